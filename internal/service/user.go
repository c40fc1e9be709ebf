package service

import (
	"github.com/mmeshcher/bakkerij/internal/model"
	"github.com/mmeshcher/bakkerij/internal/validation"
)

// Login привязывает сессию к имени пользователя. Имя должно состоять только из латинских букв,
// пароль не проверяется. При первом входе генерируется история заказов.
func (s *Service) Login(sessionID, firstName, password string) bool {
	if !validation.IsValidFirstName(firstName) {
		return false
	}

	s.users.Login(sessionID, firstName)
	s.GenerateOrderHistory(firstName)

	return true
}

// Logout завершает вход пользователя. Корзина и адрес сохраняются.
func (s *Service) Logout(sessionID string) {
	s.users.Logout(sessionID)
}

// Username возвращает имя пользователя сессии.
func (s *Service) Username(sessionID string) (string, bool) {
	return s.users.GetUsername(sessionID)
}

// IsLoggedIn сообщает, выполнен ли вход в сессии.
func (s *Service) IsLoggedIn(sessionID string) bool {
	_, ok := s.users.GetUsername(sessionID)
	return ok
}

// ChangePassword проверяет совпадение нового пароля и подтверждения. Пароль нигде не хранится.
func (s *Service) ChangePassword(sessionID, newPassword, confirmPassword string) error {
	if !s.IsLoggedIn(sessionID) {
		return ErrNotLoggedIn
	}
	if newPassword != confirmPassword {
		return ErrPasswordMismatch
	}
	return nil
}

// UpdateAddress перезаписывает адрес пользователя.
func (s *Service) UpdateAddress(username string, address model.Address) {
	s.users.SaveAddress(username, address)
}

// Address возвращает адрес пользователя.
func (s *Service) Address(username string) (model.Address, bool) {
	return s.users.GetAddress(username)
}

// SavePickupDetails сохраняет дату и время самовывоза сессии без повторной проверки.
func (s *Service) SavePickupDetails(sessionID, date, time string) {
	s.users.SavePickupDetails(sessionID, model.PickupDetails{Date: date, Time: time})
}

// PickupDetails возвращает данные самовывоза сессии.
func (s *Service) PickupDetails(sessionID string) (model.PickupDetails, bool) {
	return s.users.GetPickupDetails(sessionID)
}

// SaveLastPaymentMethod запоминает способ оплаты сессии.
func (s *Service) SaveLastPaymentMethod(sessionID, method string) {
	s.users.SaveLastPaymentMethod(sessionID, method)
}

// LastPaymentMethod возвращает последний способ оплаты или пустую строку.
func (s *Service) LastPaymentMethod(sessionID string) string {
	return s.users.GetLastPaymentMethod(sessionID)
}
