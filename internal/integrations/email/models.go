package email

import "time"

// OrderConfirmation данные письма-подтверждения заказа
type OrderConfirmation struct {
	OrderID       int64
	To            string
	CustomerName  string
	ProductName   string
	Quantity      int
	TotalCents    int64
	Currency      string
	PickupAt      *time.Time // в часовом поясе площадки
	NeedsFollowUp bool       // слот не удалось удержать, сотрудник свяжется
}
