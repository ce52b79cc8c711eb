package notifier

import (
	"fmt"
	"strings"

	"github.com/fhd3v0p/fsr-backend/internal/domain"
)

const timestampLayout = "02.01.2006 15:04:05"

// FormatOperatorMessage renders the plain text message posted to the operator chat
func FormatOperatorMessage(event domain.Event) string {
	var b strings.Builder
	at := event.OccurredAt.Format(timestampLayout)

	switch event.Type {
	case domain.EventTypeReferralCredited:
		b.WriteString("👥 Приглашение друга!\n\n")
		b.WriteString("🎯 Пригласивший:\n")
		fmt.Fprintf(&b, "• ID: %s\n", orDefault(event.Attributes[domain.EventAttrInviterID], "Не указан"))
		fmt.Fprintf(&b, "• Имя: %s\n\n", orDefault(event.Attributes[domain.EventAttrInviterName], "Не указано"))
		b.WriteString("👤 Приглашенный:\n")
		fmt.Fprintf(&b, "• ID: %d\n", event.UserID)
		fmt.Fprintf(&b, "• Имя: %s\n\n", displayName(event))
		fmt.Fprintf(&b, "🔗 Реферальный код: %s\n\n", orDefault(event.Attributes[domain.EventAttrReferralCode], "Не указан"))
		b.WriteString("🎁 +1 билет пригласившему\n\n")
		fmt.Fprintf(&b, "🕐 Время: %s", at)

	case domain.EventTypeTaskCompleted:
		number := orDefault(event.Attributes[domain.EventAttrTaskNumber], "1")
		b.WriteString("✅ Задание выполнено!\n\n")
		writeUser(&b, event)
		fmt.Fprintf(&b, "📋 Задание: %s\n", orDefault(event.Attributes[domain.EventAttrTaskName], "Не указано"))
		fmt.Fprintf(&b, "🔢 Номер: %s/%d\n\n", number, domain.GIVEAWAY_TASK_COUNT)
		progress := orDefault(event.Attributes[domain.EventAttrTasksDone], number)
		fmt.Fprintf(&b, "🎯 Прогресс: %s/%d заданий выполнено\n\n", progress, domain.GIVEAWAY_TASK_COUNT)
		fmt.Fprintf(&b, "🕐 Время: %s", at)

	case domain.EventTypeFolderSubscription:
		b.WriteString("📁 Подписка на папку\n\n")
		writeUser(&b, event)
		if wait := event.Attributes[domain.EventAttrVerificationWait]; wait != "" {
			fmt.Fprintf(&b, "⏳ Проверка подписки через: %s\n\n", wait)
		}
		if done := event.Attributes[domain.EventAttrTasksDone]; done != "" {
			fmt.Fprintf(&b, "🎯 Прогресс: %s/%d заданий выполнено\n\n", done, domain.GIVEAWAY_TASK_COUNT)
		}
		fmt.Fprintf(&b, "🕐 Время: %s", at)

	case domain.EventTypeGiveawayCompleted:
		b.WriteString("🏆 Гивевей завершен!\n\n")
		writeUser(&b, event)
		b.WriteString("🎁 Результат:\n")
		b.WriteString("• Все задания выполнены ✅\n")
		if tickets := event.Attributes[domain.EventAttrTickets]; tickets != "" {
			fmt.Fprintf(&b, "• Билеты: %s\n", tickets)
		}
		b.WriteString("• Участвует в розыгрыше призов!\n\n")
		fmt.Fprintf(&b, "🕐 Время: %s", at)

	case domain.EventTypeReferralStats:
		b.WriteString("👥 Реферальная статистика\n\n")
		writeUser(&b, event)
		b.WriteString("📊 Статистика:\n")
		fmt.Fprintf(&b, "• Приглашено друзей: %s\n", orDefault(event.Attributes[domain.EventAttrCreditedInvites], "0"))
		fmt.Fprintf(&b, "• Билеты: %s\n\n", orDefault(event.Attributes[domain.EventAttrTickets], "0"))
		b.WriteString("🎁 +1 билет за каждого друга\n\n")
		fmt.Fprintf(&b, "🕐 Время: %s", at)

	case domain.EventTypeSubscriptionCheck:
		status := "❌ Не подписан"
		if event.Attributes[domain.EventAttrSubscribed] == "true" {
			status = "✅ Подписан"
		}
		b.WriteString("🔍 Проверка подписки\n\n")
		writeUser(&b, event)
		fmt.Fprintf(&b, "📊 Статус: %s\n", status)
		fmt.Fprintf(&b, "🎫 Билеты: %s\n\n", orDefault(event.Attributes[domain.EventAttrTickets], "0"))
		fmt.Fprintf(&b, "🕐 Время: %s", at)

	default:
		b.WriteString("🆔 Лог действия пользователя\n\n")
		writeUser(&b, event)
		fmt.Fprintf(&b, "⚡ Действие: %s\n", actionLabel(event))
		fmt.Fprintf(&b, "🕐 Время: %s", at)
		if code := event.Attributes[domain.EventAttrReferralCode]; code != "" {
			fmt.Fprintf(&b, "\n\n🔗 Реферальный код: %s", code)
		}
	}

	return b.String()
}

func writeUser(b *strings.Builder, event domain.Event) {
	b.WriteString("👤 Пользователь:\n")
	fmt.Fprintf(b, "• ID: %d\n", event.UserID)
	fmt.Fprintf(b, "• Username: @%s\n", orDefault(event.Username, "Не указан"))
	fmt.Fprintf(b, "• Имя: %s\n\n", orDefault(event.FirstName, "Не указано"))
}

func actionLabel(event domain.Event) string {
	switch event.Type {
	case domain.EventTypeBotStart:
		return "Запуск бота"
	case domain.EventTypeUserRegistered:
		return "Регистрация"
	case domain.EventTypeBotCommand:
		return "Команда /" + orDefault(event.Attributes[domain.EventAttrCommand], "?")
	default:
		return string(event.Type)
	}
}

func displayName(event domain.Event) string {
	if event.FirstName != "" {
		return event.FirstName
	}
	if event.Username != "" {
		return "@" + event.Username
	}
	return "Не указано"
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
