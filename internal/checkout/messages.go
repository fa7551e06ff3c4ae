package checkout

import (
	"fmt"
	"strings"
	"time"

	"github.com/hakvenlong/e-commerce-Final/internal/domain"
)

func orderMessage(order *domain.Order) string {
	lines := []string{
		fmt.Sprintf("*New Order* at %s", time.Now().Format("2006-01-02 15:04:05")),
		fmt.Sprintf("%s\n%s\n%s\n%s", order.Contact.Name, order.Contact.Email, order.Contact.Phone, order.Contact.Address),
		fmt.Sprintf("%s\nBill: %s", title(string(order.Method)), order.BillNumber),
		"*Items:*",
	}
	for _, l := range order.Lines {
		lines = append(lines, fmt.Sprintf("• %s x%d - $%s", l.Name, l.Quantity, l.Subtotal().Amount.StringFixed(2)))
	}
	lines = append(lines, fmt.Sprintf("*Total:* $%s", order.Total.Amount.StringFixed(2)))
	return strings.Join(lines, "\n")
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func paidMessage(order *domain.Order) string {
	lines := []string{
		"PAID ORDER CONFIRMED",
		fmt.Sprintf("%s\n%s\n%s\n%s", order.Contact.Name, order.Contact.Email, order.Contact.Phone, order.Contact.Address),
		fmt.Sprintf("Bill: %s", order.BillNumber),
		fmt.Sprintf("Amount: %s %s", order.SettlementTotal.Amount.StringFixed(2), order.SettlementTotal.Currency),
		fmt.Sprintf("Time: %s", time.Now().Format("2006-01-02 15:04:05")),
	}
	return strings.Join(lines, "\n")
}
