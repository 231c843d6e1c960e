package domain

// Stats is the platform-wide snapshot shown on the operator dashboard.
type Stats struct {
	TotalUsers         int64
	TotalOrganizations int64
	TotalAssessments   int64
	TotalResponses     int64
	NewUsersLast30Days int64
	PlanBreakdown      map[string]int64
}
