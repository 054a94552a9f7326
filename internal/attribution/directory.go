package attribution

import (
	"log/slog"
	"sort"

	"github.com/ledgerworks/simpnl/internal/model"
)

// Conflict records an employee name that was reassigned to a different
// business while building a Directory.
type Conflict struct {
	Employee string
	Previous string
	Current  string
	Day      int
}

// Directory maps employee names to the business that pays them. It is built
// once from wage records and is read-only afterwards.
type Directory struct {
	employees map[string]string
	conflicts []Conflict
}

// BuildDirectory scans Wage and Replacement Wage records. A later record for
// the same employee overwrites the earlier mapping; every overwrite that
// changes the business is kept as a Conflict.
func BuildDirectory(records []model.Record) *Directory {
	d := &Directory{employees: make(map[string]string)}
	for _, rec := range records {
		if !rec.Type.IsWage() {
			continue
		}
		r := rules[rec.Type]
		employee := r.Employee(rec.Description)
		business := r.Business(rec.Description)
		if employee == "" || business == "" {
			continue
		}
		if prev, ok := d.employees[employee]; ok && prev != business {
			d.conflicts = append(d.conflicts, Conflict{
				Employee: employee,
				Previous: prev,
				Current:  business,
				Day:      rec.Day,
			})
			slog.Warn("attribution: employee reassigned", "employee", employee, "from", prev, "to", business, "day", rec.Day)
		}
		d.employees[employee] = business
	}
	return d
}

// Lookup returns the business employing employee.
func (d *Directory) Lookup(employee string) (string, bool) {
	if d == nil {
		return "", false
	}
	b, ok := d.employees[employee]
	return b, ok
}

// Len returns the number of known employees.
func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.employees)
}

// Employees returns the known employee names in sorted order.
func (d *Directory) Employees() []string {
	if d == nil {
		return nil
	}
	names := make([]string, 0, len(d.employees))
	for name := range d.employees {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Conflicts returns the reassignments seen while building, in ledger order.
func (d *Directory) Conflicts() []Conflict {
	if d == nil {
		return nil
	}
	return d.conflicts
}
