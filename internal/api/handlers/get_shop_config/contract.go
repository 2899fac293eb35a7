package get_shop_config

import "github.com/m04kA/SMC-BarberBooking/internal/domain"

type ServiceCatalog interface {
	All() []domain.Service
}

type Logger interface {
	Info(format string, v ...interface{})
}
