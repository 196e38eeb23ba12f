package sweep_holds

// SweepHoldsResponse HTTP response model
type SweepHoldsResponse struct {
	Success       bool `json:"success"`
	HoldsReleased int  `json:"holdsReleased"`
}
