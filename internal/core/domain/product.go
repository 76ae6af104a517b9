package domain

// Product is a catalog item. Prices are in cents.
type Product struct {
	ID             string `json:"id"`
	Type           string `json:"type"`
	Price          int64  `json:"price"`
	PromotionPrice *int64 `json:"promotionPrice,omitempty"`
}

// OnPromotion reports whether a promotion price is set
func (p Product) OnPromotion() bool {
	return p.PromotionPrice != nil && *p.PromotionPrice > 0
}

// LoginCredentials is a username/password pair
type LoginCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the outcome of a mock login
type LoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Login messages
const (
	MessageLoginSuccess = "Login successful!"
	MessageLoginFailure = "Invalid credentials"
)
