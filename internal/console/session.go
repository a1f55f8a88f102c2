package console

import "supermarket/internal/domain"

// Session is the state of one logged-in user. The cart lives only as long as
// the session.
type Session struct {
	User *domain.User
	Cart *domain.Cart
}

func NewSession(user *domain.User) *Session {
	return &Session{User: user, Cart: domain.NewCart()}
}

// Logout drops the user and discards the cart
func (s *Session) Logout() {
	s.Cart.Clear()
	s.User = nil
}
