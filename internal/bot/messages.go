package bot

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/fhd3v0p/fsr-backend/internal/domain"
	"github.com/fhd3v0p/fsr-backend/internal/ledger"
)

const dateLayout = "02.01.2006"

const helpText = `<b>🤖 FSR Bot - Справка</b>

<b>📋 Доступные команды:</b>
• <code>/start</code> - Запустить бота и открыть приложение
• <code>/giveaway</code> - Информация о розыгрыше призов
• <code>/invite</code> - Пригласить друзей и получить билеты
• <code>/tickets</code> - Сколько у тебя билетов
• <code>/help</code> - Показать эту справку

<b>🎫 Как получить билеты:</b>
• 1 билет — за подписку на все каналы Telegram-папки
• +1 билет — за каждого друга по реферальной ссылке

<b>💬 Поддержка:</b> @FSR_Adminka`

func welcomeText(firstName string, result *ledger.RegistrationResult) string {
	if firstName == "" {
		firstName = "друг"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🎉 Привет, %s!\n\n", html.EscapeString(firstName))
	b.WriteString("Добро пожаловать в <b>Fresh Style Russia</b> - платформу для поиска лучших артистов!\n\n")
	b.WriteString("🎯 <b>Что у нас есть:</b>\n")
	b.WriteString("• AI-поиск артистов по фото\n")
	b.WriteString("• Каталог мастеров по городам\n")
	b.WriteString("• Розыгрыш призов\n")
	b.WriteString("• Реферальная система с бонусами\n\n")
	b.WriteString("🚀 Нажми \"Open FSR\" чтобы начать!")

	if result.Credited && result.Inviter != nil {
		fmt.Fprintf(&b, "\n\n🎁 Тебя пригласил %s, он получил +1 билет!", html.EscapeString(result.Inviter.DisplayName()))
	}

	return b.String()
}

func giveawayText(catalog *domain.PrizeCatalog) string {
	var b strings.Builder
	b.WriteString("🎁 <b>ПРИЗЫ РОЗЫГРЫША:</b>\n\n")
	for _, prize := range catalog.Prizes {
		fmt.Fprintf(&b, "💎 <b>%s</b>\n", html.EscapeString(prize.Name))
		if prize.Description != "" {
			fmt.Fprintf(&b, "└ %s\n", html.EscapeString(prize.Description))
		}
		fmt.Fprintf(&b, "└ 💰 Стоимость: %s₽\n\n", formatRubles(prize.Value))
	}
	fmt.Fprintf(&b, "🏆 <b>ОБЩАЯ СТОИМОСТЬ ПРИЗОВ: %s₽</b>\n\n", formatRubles(catalog.TotalValue))
	b.WriteString("🎯 <b>Как участвовать:</b>\n")
	b.WriteString("1️⃣ Подпишись на Telegram-папку\n")
	b.WriteString("2️⃣ Пригласи друзей\n")
	b.WriteString("3️⃣ Выполни все задания в приложении")

	return b.String()
}

func inviteText(summary *domain.ReferralSummary) string {
	var b strings.Builder
	b.WriteString("🎯 <b>Пригласи друзей и получи билеты!</b>\n\n")
	b.WriteString("👥 <b>Твоя статистика:</b>\n")
	fmt.Fprintf(&b, "• Приглашено: %d друзей\n", summary.CreditedInviteCount)
	fmt.Fprintf(&b, "• Билетов: %d\n", summary.Tickets)
	fmt.Fprintf(&b, "• Твой код: <code>%s</code>\n\n", summary.Code)
	b.WriteString("🎁 <b>За каждого друга:</b> +1 билет в розыгрыше\n\n")
	b.WriteString("🔗 <b>Твоя ссылка:</b>\n")
	b.WriteString(summary.Link)

	return b.String()
}

func ticketsText(status *domain.TicketStatus) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎫 <b>Твои билеты: %d</b>\n\n", status.Tickets)
	fmt.Fprintf(&b, "• Подписка на каналы: %s\n", checkMark(status.Subscribed))
	fmt.Fprintf(&b, "• Друзей приглашено: %d\n", status.CreditedInviteCount)
	if status.CheckedAt != nil {
		fmt.Fprintf(&b, "• Последняя проверка: %s\n", status.CheckedAt.Format("02.01.2006 15:04"))
	}
	b.WriteString("\n")
	b.WriteString(tasksText(status.Tasks))
	b.WriteString("\n1 билет — за подписку на Telegram-папку\n")
	b.WriteString("+1 билет — за каждого друга по реферальной ссылке")

	return b.String()
}

func statsText(stats *domain.GlobalStats, top []domain.ReferrerRank) string {
	var b strings.Builder
	b.WriteString("📊 <b>СТАТИСТИКА FSR БОТА</b>\n\n")
	b.WriteString("👥 <b>Пользователи:</b>\n")
	fmt.Fprintf(&b, "• Всего: %d\n", stats.TotalUsers)
	fmt.Fprintf(&b, "• Подписаны на каналы: %d\n", stats.SubscribedUsers)
	fmt.Fprintf(&b, "• Активных за 7 дней: %d\n\n", stats.ActiveUsers7d)
	b.WriteString("👥 <b>Рефералы:</b>\n")
	fmt.Fprintf(&b, "• Всего приглашений: %d\n\n", stats.TotalReferrals)
	b.WriteString("🎯 <b>Топ рефералов:</b>\n")
	if len(top) == 0 {
		b.WriteString("Пока нет рефералов")
	}
	for i, rank := range top {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "• %s: %d друзей", html.EscapeString(rankName(rank)), rank.Invites)
	}

	return b.String()
}

func myStatsText(stats *domain.UserStats, summary *domain.ReferralSummary) string {
	username := "Не указан"
	if stats.Username != "" {
		username = "@" + stats.Username
	}
	firstName := stats.FirstName
	if firstName == "" {
		firstName = "Не указано"
	}

	var b strings.Builder
	b.WriteString("📊 <b>Твоя статистика</b>\n\n")
	b.WriteString("👤 <b>Профиль:</b>\n")
	fmt.Fprintf(&b, "• Имя: %s\n", html.EscapeString(firstName))
	fmt.Fprintf(&b, "• Username: %s\n", html.EscapeString(username))
	fmt.Fprintf(&b, "• Регистрация: %s\n\n", stats.CreatedAt.Format(dateLayout))
	fmt.Fprintf(&b, "🎫 <b>Билеты:</b> %d\n", stats.Tickets)
	fmt.Fprintf(&b, "• Подписка: %s\n", checkMark(stats.Subscribed))
	fmt.Fprintf(&b, "• Приглашено друзей: %d\n\n", stats.CreditedInviteCount)
	b.WriteString(tasksText(stats.Tasks))
	b.WriteString("\n🎁 <b>Реферальная ссылка:</b>\n")
	fmt.Fprintf(&b, "<code>%s</code>", summary.Link)

	return b.String()
}

// tasksText renders the giveaway checklist, ending with a newline
func tasksText(tasks domain.TaskStatus) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 <b>Задания: %d/%d</b>\n", tasks.Done(), domain.GIVEAWAY_TASK_COUNT)
	fmt.Fprintf(&b, "• Подписка на папку: %s\n", checkMark(tasks.FolderSubscribed))
	fmt.Fprintf(&b, "• Приглашен друг: %s\n", checkMark(tasks.InvitedFriend))
	if tasks.Completed() {
		b.WriteString("🏆 Все задания выполнены, ты участвуешь в розыгрыше!\n")
	}
	return b.String()
}

func rankName(rank domain.ReferrerRank) string {
	switch {
	case rank.FirstName != "":
		return rank.FirstName
	case rank.Username != "":
		return "@" + rank.Username
	default:
		return fmt.Sprintf("id%d", rank.UserID)
	}
}

func checkMark(ok bool) string {
	if ok {
		return "✅"
	}
	return "❌"
}

// formatRubles groups thousands with commas: 170000 -> 170,000
func formatRubles(v int64) string {
	s := strconv.FormatInt(v, 10)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String()
}
