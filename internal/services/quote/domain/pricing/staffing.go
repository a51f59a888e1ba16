package pricing

// Staffing is the headcount a quote books.
type Staffing struct {
	Kitchen  float64 `json:"kitchen"`
	Floor    float64 `json:"floor"`
	Clearing float64 `json:"clearing"`
	// Managers counts kitchen, logistics and event managers.
	Managers float64 `json:"managers"`
}

// RequiredStaff reads headcounts from the labor lines of items, so manual
// quantity edits carry through to the staffing board.
func RequiredStaff(items []LineItem) Staffing {
	var s Staffing
	for _, item := range items {
		if item.Category != CategoryLabor {
			continue
		}
		switch item.Key {
		case "kitchen_workers":
			s.Kitchen += item.Quantity
		case "floor_staff":
			s.Floor += item.Quantity
		case "clearing_crew":
			s.Clearing += item.Quantity
		case "kitchen_manager", "logistics_manager", "event_manager":
			s.Managers += item.Quantity
		}
	}
	return s
}
