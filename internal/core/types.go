package core

// User is a registered account. Role is empty for regular members and
// "admin" for administrators; Badge tracks the purchased membership package.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
	Badge string `json:"badge,omitempty"`
}

const AdminRole = "admin"

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == AdminRole
}

// Meal is a published menu item.
type Meal struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	AdminName   string   `json:"admin_name,omitempty"`
	AdminEmail  string   `json:"admin_email,omitempty"`
	Likes       int      `json:"likes"`
	Date        string   `json:"date,omitempty"`
	Reviews     int      `json:"reviews"`
	Ingredients []string `json:"ingredients,omitempty"`
	Category    string   `json:"category,omitempty"`
	Price       float64  `json:"price"`
	Rating      float64  `json:"rating"`
	Description string   `json:"description,omitempty"`
}

// UpcomingMeal is a meal announced for a future date. It carries the same
// shape as Meal but lives in its own collection until it is published.
type UpcomingMeal struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	AdminName   string   `json:"admin_name,omitempty"`
	AdminEmail  string   `json:"admin_email,omitempty"`
	Likes       int      `json:"likes"`
	Date        string   `json:"date,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
	Category    string   `json:"category,omitempty"`
	Price       float64  `json:"price"`
	Description string   `json:"description,omitempty"`
}

// Badge is a purchasable membership package.
type Badge struct {
	ID          string  `json:"id"`
	PackageName string  `json:"package_name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

// Payment is a completed charge recorded after a successful payment intent.
type Payment struct {
	ID            string  `json:"id"`
	Email         string  `json:"email"`
	Price         float64 `json:"price"`
	TransactionID string  `json:"transactionId,omitempty"`
	PackageName   string  `json:"package_name,omitempty"`
	Date          string  `json:"date,omitempty"`
	Status        string  `json:"status,omitempty"`
}
