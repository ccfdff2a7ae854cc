package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// 400 Bad Request
	ErrStatusBadRequest       = fmt.Errorf("bad request")
	ErrQuantityMustBePositive = fmt.Errorf("quantity must be positive")
	ErrRecipientRequired      = fmt.Errorf("recipient fields are required")
	ErrInvalidAmount          = fmt.Errorf("invalid amount")
	ErrAmountPrecision        = fmt.Errorf("amount must have at most 2 decimal places")
	ErrInvalidStatus          = fmt.Errorf("invalid order status")
	ErrEmptyCart              = fmt.Errorf("cart is empty")
	ErrPasswordTooShort       = fmt.Errorf("password is too short")
	ErrEmailRequired          = fmt.Errorf("email is required")
	ErrIncorrectEnvVariable   = fmt.Errorf("incorrect env variable")

	// 401 / 403
	ErrUnauthorized = fmt.Errorf("missing or invalid token")
	ErrForbidden    = fmt.Errorf("operation is not permitted")

	// 404 Not Found
	ErrProductUnavailable = fmt.Errorf("product is unavailable")
	ErrOrderNotFound      = fmt.Errorf("order not found")
	ErrCartNotFound       = fmt.Errorf("cart not found")
	ErrCartItemNotFound   = fmt.Errorf("cart item not found")
	ErrMemberNotFound     = fmt.Errorf("member not found")
	ErrTokenNotFound      = fmt.Errorf("reset token is invalid or expired")

	// 409 Conflict
	ErrInsufficientInventory = fmt.Errorf("insufficient inventory")
	ErrIllegalTransition     = fmt.Errorf("illegal order status transition")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// AmountMismatchError возвращается, когда заявленная клиентом сумма заказа
// не совпадает с пересчитанной на сервере. Несёт корректную сумму в копейках.
type AmountMismatchError struct {
	CorrectAmount int64
}

func (e *AmountMismatchError) Error() string {
	return fmt.Sprintf("declared amount mismatch, correct amount is %d", e.CorrectAmount)
}

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
