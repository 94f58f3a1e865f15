// Package catalog holds the product's navigation tree and quick actions and
// filters them by role.
package catalog

import (
	"github.com/cloo-solutions/chairside/internal/domain"
	"github.com/cloo-solutions/chairside/internal/palette"
)

var navigationTree = []domain.NavItem{
	{Name: "Dashboard", Description: "Today at a glance", Href: "/dashboard", Icon: "home", Permission: domain.PermViewDashboard},
	{
		Name: "Calendar", Description: "Bookings by day and week", Href: "/calendar", Icon: "calendar", Permission: domain.PermViewOwnSchedule,
		Children: []domain.NavItem{
			{Name: "Waitlist", Description: "Clients waiting for an opening", Href: "/calendar/waitlist", Permission: domain.PermManageCalendar},
			{Name: "Time Off", Description: "Blocked hours and holidays", Href: "/calendar/time-off", Permission: domain.PermManageCalendar},
		},
	},
	{Name: "Appointments", Description: "Upcoming and past bookings", Href: "/appointments", Icon: "clipboard", Permission: domain.PermManageAppointments},
	{Name: "Clients", Description: "Customer list and history", Href: "/clients", Icon: "users", Permission: domain.PermManageClients},
	{
		Name: "Barbers", Description: "Team members and chairs", Href: "/barbers", Icon: "scissors", Permission: domain.PermManageStaff,
		Children: []domain.NavItem{
			{Name: "Schedules", Description: "Working hours per barber", Href: "/barbers/schedules", Permission: domain.PermManageStaff},
			{Name: "Commissions", Description: "Commission rates and earnings", Href: "/barbers/commissions", Permission: domain.PermViewCommissions},
		},
	},
	{Name: "Services", Description: "Cuts, shaves and pricing", Href: "/services", Icon: "tag", Permission: domain.PermManageServices},
	{
		Name: "Payments", Description: "Transactions and checkout", Href: "/payments", Icon: "credit-card", Permission: domain.PermManagePayments,
		Children: []domain.NavItem{
			{Name: "Payouts", Description: "Bank transfers to the shop", Href: "/payments/payouts", Permission: domain.PermManagePayments},
			{Name: "Refunds", Description: "Refund history", Href: "/payments/refunds", Permission: domain.PermIssueRefunds},
		},
	},
	{
		Name: "Marketing", Description: "Bring clients back", Href: "/marketing", Icon: "megaphone", Permission: domain.PermManageMarketing,
		Children: []domain.NavItem{
			{Name: "Campaigns", Description: "Email and SMS campaigns", Href: "/marketing/campaigns", Permission: domain.PermManageMarketing},
			{Name: "Gift Cards", Description: "Sell and redeem gift cards", Href: "/marketing/gift-cards", Permission: domain.PermManageMarketing},
			{Name: "Reviews", Description: "Client ratings and replies", Href: "/marketing/reviews", Permission: domain.PermManageMarketing},
		},
	},
	{
		Name: "Analytics", Description: "Revenue and booking trends", Href: "/analytics", Icon: "chart", Permission: domain.PermViewAnalytics,
		Children: []domain.NavItem{
			{Name: "Business Reports", Description: "Revenue per barber and service", Href: "/analytics/reports", Permission: domain.PermViewAnalytics},
			{Name: "Performance", Description: "Utilisation and rebooking rates", Href: "/analytics/performance", Permission: domain.PermViewAnalytics},
		},
	},
	{
		Name: "Settings", Description: "Shop and account preferences", Href: "/settings", Icon: "gear", Permission: domain.PermPersonalSettings,
		Children: []domain.NavItem{
			{Name: "Business Profile", Description: "Name, address and opening hours", Href: "/settings/business", Permission: domain.PermManageSettings},
			{Name: "Accessibility", Description: "Contrast, motion and text size", Href: "/settings/accessibility", Permission: domain.PermPersonalSettings},
			{Name: "Notifications", Description: "Reminders and alerts", Href: "/settings/notifications", Permission: domain.PermPersonalSettings},
			{Name: "Integrations", Description: "Calendar sync and accounting apps", Href: "/settings/integrations", Permission: domain.PermManageIntegrations},
			{Name: "Billing", Description: "Plan and invoices", Href: "/settings/billing", Permission: domain.PermManageBilling},
		},
	},
	{Name: "Help", Description: "Guides and support", Href: "/help", Icon: "help"},
}

var quickActions = []domain.QuickAction{
	{ID: "appointment.new", Name: "New Appointment", Description: "Book a client into a chair", Href: "/appointments/new", Shortcut: "n", Permission: domain.PermManageAppointments},
	{ID: "appointment.walk-in", Name: "Check In Walk-in", Description: "Seat a client without a booking", Href: "/appointments/walk-in", Shortcut: "w", Permission: domain.PermManageAppointments},
	{ID: "client.new", Name: "Add Client", Description: "Create a client profile", Href: "/clients/new", Shortcut: "c", Permission: domain.PermManageClients},
	{ID: "calendar.block", Name: "Block Time", Description: "Reserve hours on the calendar", Href: "/calendar/time-off/new", Shortcut: "b", Permission: domain.PermManageCalendar},
	{ID: "payment.refund", Name: "Issue Refund", Description: "Refund a payment", Href: "/payments/refunds/new", Permission: domain.PermIssueRefunds},
	{ID: "marketing.campaign", Name: "Create Campaign", Description: "Start an email or SMS campaign", Href: "/marketing/campaigns/new", Permission: domain.PermManageMarketing},
	{ID: "staff.new", Name: "Add Barber", Description: "Invite a team member", Href: "/barbers/new", Permission: domain.PermManageStaff},
	{ID: "reports.export", Name: "Export Report", Description: "Download revenue as CSV", Href: "/analytics/reports/export", Permission: domain.PermViewAnalytics},
}

// Navigation returns the navigation tree visible to role. A hidden parent
// hides its children.
func Navigation(role domain.Role) []domain.NavItem {
	return filterTree(navigationTree, role)
}

func filterTree(items []domain.NavItem, role domain.Role) []domain.NavItem {
	out := make([]domain.NavItem, 0, len(items))
	for _, item := range items {
		if !domain.Allows(role, item.Permission) {
			continue
		}
		item.Children = filterTree(item.Children, role)
		if len(item.Children) == 0 {
			item.Children = nil
		}
		out = append(out, item)
	}
	return out
}

// QuickActions returns the quick actions role may run.
func QuickActions(role domain.Role) []domain.QuickAction {
	out := make([]domain.QuickAction, 0, len(quickActions))
	for _, action := range quickActions {
		if domain.Allows(role, action.Permission) {
			out = append(out, action)
		}
	}
	return out
}

// Contains reports whether href is a navigation entry or quick action that
// role can reach.
func Contains(role domain.Role, href string) bool {
	for _, item := range flatten(Navigation(role)) {
		if item.Href == href {
			return true
		}
	}
	for _, action := range QuickActions(role) {
		if action.Href == href {
			return true
		}
	}
	return false
}

type flatItem struct {
	domain.NavItem
	topLevel bool
}

func flatten(tree []domain.NavItem) []flatItem {
	var out []flatItem
	for _, item := range tree {
		out = append(out, flatItem{NavItem: item, topLevel: true})
		for _, child := range item.Children {
			out = append(out, flatItem{NavItem: child})
		}
	}
	return out
}

// Candidates assembles the ranking snapshot for role: top-level entries get
// palette.BonusTopLevel, children none, quick actions palette.BonusQuickAction.
// Favorites and recents are appended without bonus when their Href is not
// already offered by the catalog.
func Candidates(role domain.Role, favorites, recents []palette.Item) []palette.Candidate {
	nav := flatten(Navigation(role))
	actions := QuickActions(role)

	out := make([]palette.Candidate, 0, len(nav)+len(actions)+len(favorites)+len(recents))
	seen := make(map[string]bool, cap(out))

	for _, item := range nav {
		bonus := 0
		if item.topLevel {
			bonus = palette.BonusTopLevel
		}
		seen[item.Href] = true
		out = append(out, palette.Candidate{
			Item: palette.Item{
				Name:        item.Name,
				Description: item.Description,
				Href:        item.Href,
				Kind:        palette.KindNavigation,
			},
			Bonus: bonus,
		})
	}

	for _, action := range actions {
		seen[action.Href] = true
		out = append(out, palette.Candidate{
			Item: palette.Item{
				Name:        action.Name,
				Description: action.Description,
				Href:        action.Href,
				Kind:        palette.KindAction,
			},
			Bonus: palette.BonusQuickAction,
		})
	}

	appendPinned := func(items []palette.Item, kind palette.Kind) {
		for _, item := range items {
			if item.Href == "" || seen[item.Href] {
				continue
			}
			seen[item.Href] = true
			item.Kind = kind
			out = append(out, palette.Candidate{Item: item})
		}
	}
	appendPinned(favorites, palette.KindFavorite)
	appendPinned(recents, palette.KindRecent)

	return out
}
