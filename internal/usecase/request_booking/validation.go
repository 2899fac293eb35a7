package request_booking

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if _, err := types.NewTimeStringFromString(req.StartTime); err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInvalidInput, err)
	}

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}
	if len(req.ServiceIDs) > domain.MaxServicesPerBooking {
		return fmt.Errorf("%w: too many services (max %d)", ErrInvalidInput, domain.MaxServicesPerBooking)
	}

	return validateCustomer(req.Customer)
}

func validateCustomer(c domain.Customer) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customer name is too long (max %d)", ErrInvalidInput, domain.MaxCustomerNameLength)
	}

	phone := strings.TrimSpace(c.Phone)
	if phone == "" {
		return fmt.Errorf("%w: customer phone is required", ErrInvalidInput)
	}
	if len(phone) > domain.MaxCustomerPhoneLength {
		return fmt.Errorf("%w: customer phone is too long (max %d)", ErrInvalidInput, domain.MaxCustomerPhoneLength)
	}

	email := strings.TrimSpace(c.Email)
	if email == "" {
		return fmt.Errorf("%w: customer email is required", ErrInvalidInput)
	}
	if len(email) > domain.MaxCustomerEmailLength {
		return fmt.Errorf("%w: customer email is too long", ErrInvalidInput)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: customer email %q is invalid", ErrInvalidInput, email)
	}

	return nil
}

func normalizeCustomer(c domain.Customer) domain.Customer {
	return domain.Customer{
		Name:  strings.TrimSpace(c.Name),
		Email: strings.TrimSpace(c.Email),
		Phone: strings.TrimSpace(c.Phone),
	}
}
