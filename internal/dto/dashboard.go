package dto

// DashboardStats is the admin dashboard aggregate.
type DashboardStats struct {
	TotalUsers         int64   `json:"total_users"`
	TotalSponsors      int64   `json:"total_sponsors"`
	TotalChildren      int64   `json:"total_children"`
	ActiveSponsorships int64   `json:"active_sponsorships"`
	TotalSponsorships  int64   `json:"total_sponsorships"`
	TotalPayments      int64   `json:"total_payments"`
	TotalAmount        float64 `json:"total_amount"`
	UnreadReports      int64   `json:"unread_reports"`
}
