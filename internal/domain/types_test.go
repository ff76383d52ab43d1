package domain

import "testing"

func TestCustomerFullName(t *testing.T) {
	cases := []struct {
		first, last, want string
	}{
		{"Jane", "Hacks", "Jane Hacks"},
		{"Jane", "", "Jane"},
		{"", "Hacks", "Hacks"},
		{"", "", ""},
	}
	for _, tc := range cases {
		c := Customer{FirstName: tc.first, LastName: tc.last}
		if got := c.FullName(); got != tc.want {
			t.Errorf("FullName(%q, %q) = %q, want %q", tc.first, tc.last, got, tc.want)
		}
	}
}

func TestSessionCart(t *testing.T) {
	var s Session
	if s.Authenticated() {
		t.Fatalf("zero session must be anonymous")
	}

	s.AddItem(1)
	s.AddItem(1)
	s.AddItem(3)
	if len(s.Cart) != 3 {
		t.Fatalf("each AddItem should append one unit, got %v", s.Cart)
	}

	s.Email = "jane@ubermelon.com"
	if !s.Authenticated() {
		t.Fatalf("session with email must be authenticated")
	}

	s.ClearCart()
	if len(s.Cart) != 0 {
		t.Fatalf("ClearCart must empty the cart, got %v", s.Cart)
	}
	if !s.Authenticated() {
		t.Fatalf("ClearCart must not touch the identity")
	}
}

func TestOrderUnits(t *testing.T) {
	order := Order{Lines: []OrderLine{
		{Quantity: 2},
		{Quantity: 1},
	}}
	if got := order.Units(); got != 3 {
		t.Fatalf("Units() = %d, want 3", got)
	}
	if (Order{}).Units() != 0 {
		t.Fatalf("empty order must report zero units")
	}
}
