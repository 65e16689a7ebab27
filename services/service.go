// services/service.go — helpers shared by every resource service
package services

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// parseID parses the numeric :id route parameter.
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

// parseDate accepts "2006-01-02" or full RFC3339.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// rowExists reports whether a row of model with the given primary key exists.
// Used to validate foreign keys on create/update before the store does,
// so a dangling id surfaces as a 400 instead of a driver error.
func rowExists(db *gorm.DB, model interface{}, id uint) (bool, error) {
	var n int64
	if err := db.Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// refCheck names one table/column that may hold references to a row
// about to be deleted.
type refCheck struct {
	model  interface{}
	column string
	label  string
}

// blockingRef returns the label of the first relation that still references
// id, or "" when the row is safe to delete. Deletes are reject-if-referenced;
// there are no cascades.
func blockingRef(db *gorm.DB, id uint, checks []refCheck) (string, error) {
	for _, rc := range checks {
		var n int64
		if err := db.Model(rc.model).Where(rc.column+" = ?", id).Count(&n).Error; err != nil {
			return "", err
		}
		if n > 0 {
			return rc.label, nil
		}
	}
	return "", nil
}
