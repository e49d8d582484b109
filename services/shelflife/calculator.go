package shelflife

const (
	// GraceDays is taken off the expiration date before counting remaining days.
	// It does not affect the total shelf life.
	GraceDays = 3
	// AcceptableThreshold and LimitThreshold are remaining-percentage lower bounds.
	AcceptableThreshold = 80
	LimitThreshold      = 70
)

// Status is the acceptance verdict of a product.
type Status string

const (
	StatusAcceptable      Status = "acceptable"
	StatusLimitAcceptable Status = "limit-acceptable"
	StatusRejected        Status = "rejected"
)

var statusMessages = map[Status]string{
	StatusAcceptable:      "Recién producido - Aceptable",
	StatusLimitAcceptable: "Límite aceptable - Aceptable",
	StatusRejected:        "No aceptable - Rechazado",
}

// AllStatuses returns every status, best first.
func AllStatuses() []Status {
	return []Status{StatusAcceptable, StatusLimitAcceptable, StatusRejected}
}

// Message returns the fixed label shown for the status.
func (s Status) Message() string {
	return statusMessages[s]
}

func (s Status) String() string {
	return string(s)
}

// IsAccepted is true for both acceptable statuses.
func (s Status) IsAccepted() bool {
	return s == StatusAcceptable || s == StatusLimitAcceptable
}

// ProductDates are the three inputs of a calculation. Elaboration and
// Expiration are nil until the user enters them.
type ProductDates struct {
	Elaboration *CalendarDate
	Expiration  *CalendarDate
	Evaluation  CalendarDate
}

// Calculation is the shelf-life verdict for a set of ProductDates.
type Calculation struct {
	TotalShelfLife      int    `json:"total_shelf_life"`
	RemainingDays       int    `json:"remaining_days"`
	RemainingPercentage int    `json:"remaining_percentage"`
	Status              Status `json:"status"`
	StatusMessage       string `json:"status_message"`
}

// Calculate derives the shelf-life verdict. It returns false when either
// production or expiration date is missing, or when the expiration is not
// strictly after production.
func Calculate(dates ProductDates) (Calculation, bool) {
	if dates.Elaboration == nil || dates.Expiration == nil {
		return Calculation{}, false
	}

	total := TotalShelfLife(*dates.Elaboration, *dates.Expiration)
	if total <= 0 {
		return Calculation{}, false
	}

	remaining := RemainingDays(*dates.Expiration, dates.Evaluation)
	percentage := RemainingPercentage(remaining, total)
	status := DetermineStatus(percentage)

	return Calculation{
		TotalShelfLife:      total,
		RemainingDays:       remaining,
		RemainingPercentage: percentage,
		Status:              status,
		StatusMessage:       status.Message(),
	}, true
}

// TotalShelfLife is expiration - elaboration in days, without the grace margin.
func TotalShelfLife(elaboration, expiration CalendarDate) int {
	return DaysBetween(elaboration, expiration)
}

// RemainingDays counts from evaluation to the expiration minus GraceDays,
// never below zero.
func RemainingDays(expiration, evaluation CalendarDate) int {
	adjusted := expiration.AddDays(-GraceDays)
	remaining := DaysBetween(evaluation, adjusted)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// RemainingPercentage is round(remaining / total * 100), half away from zero,
// kept inside 0..100. A non-positive total yields 0.
func RemainingPercentage(remaining, total int) int {
	if total <= 0 || remaining <= 0 {
		return 0
	}
	// Integer half-up: floor((200r + t) / 2t) == round(100r / t) for r, t > 0.
	p := (200*remaining + total) / (2 * total)
	if p > 100 {
		return 100
	}
	return p
}

// DetermineStatus maps a remaining percentage to a status.
func DetermineStatus(percentage int) Status {
	switch {
	case percentage >= AcceptableThreshold:
		return StatusAcceptable
	case percentage >= LimitThreshold:
		return StatusLimitAcceptable
	default:
		return StatusRejected
	}
}
