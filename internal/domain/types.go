package domain

// Item is a catalog melon. Prices are carried as int64 minor units
// (cents) end to end; display formatting happens at the edge.
type Item struct {
	ID          int    `json:"id" yaml:"id"`
	CommonName  string `json:"commonName" yaml:"common_name"`
	Variety     string `json:"variety,omitempty" yaml:"variety"`
	Price       int64  `json:"price" yaml:"price"`
	Color       string `json:"color,omitempty" yaml:"color"`
	Seedless    bool   `json:"seedless,omitempty" yaml:"seedless"`
	ImageURL    string `json:"imageUrl,omitempty" yaml:"image_url"`
	Description string `json:"description,omitempty" yaml:"description"`
}

// Customer is a registered shopper. The password is stored and compared
// as plaintext, matching the credential file contract.
type Customer struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"-"`
}

// FullName joins the customer's first and last names for display.
func (c Customer) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	default:
		return c.FirstName + " " + c.LastName
	}
}

// OrderLine is one aggregated row of a cart: a distinct item with the
// number of units selected and the resulting subtotal.
type OrderLine struct {
	Item      Item  `json:"item"`
	Quantity  int   `json:"quantity"`
	UnitPrice int64 `json:"unitPrice"`
	Subtotal  int64 `json:"subtotal"`
}

// Order is the derived view of a cart: grouped lines in first-occurrence
// order plus the grand total. Never persisted; rebuilt on every view.
type Order struct {
	Lines []OrderLine `json:"lines"`
	Total int64       `json:"total"`
}

// Units reports the total number of units across all lines.
func (o Order) Units() int {
	n := 0
	for _, line := range o.Lines {
		n += line.Quantity
	}
	return n
}

// Session is the per-requester state the host persists between
// requests: an optional authenticated identity and the pending cart.
type Session struct {
	Email string `json:"email,omitempty"`
	Cart  []int  `json:"cart,omitempty"`
}

// Authenticated reports whether an identity is attached to the session.
func (s *Session) Authenticated() bool {
	return s.Email != ""
}

// AddItem appends one unit of the given item to the cart. Duplicates
// are meaningful: each occurrence is one unit.
func (s *Session) AddItem(id int) {
	s.Cart = append(s.Cart, id)
}

// ClearCart empties the cart. Only an explicit checkout/reset calls
// this; login and logout leave the cart alone.
func (s *Session) ClearCart() {
	s.Cart = nil
}
