package domain

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Occupant тот, кто занял слот
type Occupant struct {
	Name    string
	Contact string // телефон клиента
}

// Label представление в ячейке сетки: "Имя (телефон)"
func (o Occupant) Label() string {
	if o.Contact == "" {
		return o.Name
	}
	return o.Name + " (" + o.Contact + ")"
}

// ParseOccupant разбирает Label обратно
// Ячейки, заполненные вручную, могут не содержать контакта
func ParseOccupant(label string) Occupant {
	label = strings.TrimSpace(label)
	open := strings.LastIndex(label, " (")
	if open < 0 || !strings.HasSuffix(label, ")") {
		return Occupant{Name: label}
	}
	return Occupant{
		Name:    label[:open],
		Contact: label[open+2 : len(label)-1],
	}
}

// Cell состояние одного слота
type Cell struct {
	Slot     types.TimeString
	Occupant *Occupant // nil = свободно
}

func (c Cell) IsFree() bool {
	return c.Occupant == nil
}

// DayGrid ячейки одной даты в хронологическом порядке
type DayGrid struct {
	Date  time.Time
	Open  types.TimeString
	Close types.TimeString
	Cells []Cell
}

// IndexOf позиция слота в сетке или -1
func (g *DayGrid) IndexOf(slot types.TimeString) int {
	for i, c := range g.Cells {
		if c.Slot == slot {
			return i
		}
	}
	return -1
}

// FreeMask true для свободных ячеек
func (g *DayGrid) FreeMask() []bool {
	mask := make([]bool, len(g.Cells))
	for i, c := range g.Cells {
		mask[i] = c.IsFree()
	}
	return mask
}
