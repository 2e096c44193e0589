package cart

import (
	"slices"

	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/models"
)

// ItemUpdate is a named change to an item already in the cart. The set is
// closed: the id, machine snapshot and timestamp can never be rewritten.
type ItemUpdate interface {
	apply(item *models.CartItem)
}

type updateFunc func(item *models.CartItem)

func (f updateFunc) apply(item *models.CartItem) { f(item) }

func SetUrgency(u models.Urgency) ItemUpdate {
	return updateFunc(func(item *models.CartItem) {
		if u.Valid() {
			item.Urgency = u
		}
	})
}

func SetProblemDescription(description string) ItemUpdate {
	return updateFunc(func(item *models.CartItem) {
		item.ProblemDescription = description
	})
}

// SetPartCategories ignores an empty selection.
func SetPartCategories(categories []string) ItemUpdate {
	return updateFunc(func(item *models.CartItem) {
		if len(categories) == 0 {
			return
		}
		item.PartCategories = slices.Clone(categories)
	})
}

// SetMachineDetails changes the optional serial, year and hours. Nil
// arguments leave the current value in place.
func SetMachineDetails(serialNumber, manufacturingYear, operatingHours *string) ItemUpdate {
	return updateFunc(func(item *models.CartItem) {
		if serialNumber != nil {
			item.SerialNumber = *serialNumber
		}
		if manufacturingYear != nil {
			item.ManufacturingYear = *manufacturingYear
		}
		if operatingHours != nil {
			item.OperatingHours = *operatingHours
		}
	})
}

// UpdatesFromRequest maps the optional fields of an API request onto the
// named updates.
func UpdatesFromRequest(req models.UpdateItemRequest) []ItemUpdate {
	var updates []ItemUpdate

	if req.Urgency != nil {
		updates = append(updates, SetUrgency(*req.Urgency))
	}
	if req.ProblemDescription != nil {
		updates = append(updates, SetProblemDescription(*req.ProblemDescription))
	}
	if len(req.PartCategories) > 0 {
		updates = append(updates, SetPartCategories(req.PartCategories))
	}
	if req.SerialNumber != nil || req.ManufacturingYear != nil || req.OperatingHours != nil {
		updates = append(updates, SetMachineDetails(req.SerialNumber, req.ManufacturingYear, req.OperatingHours))
	}

	return updates
}
