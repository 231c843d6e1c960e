package admin

import (
	"time"

	admindomain "github.com/assessly-hq/assessly-services/api/internal/admin/domain"
	publicdomain "github.com/assessly-hq/assessly-services/api/internal/public/domain"
)

type statsResponse struct {
	TotalUsers         int64            `json:"totalUsers"`
	TotalOrganizations int64            `json:"totalOrganizations"`
	TotalAssessments   int64            `json:"totalAssessments"`
	TotalResponses     int64            `json:"totalResponses"`
	NewUsersLast30Days int64            `json:"newUsersLast30Days"`
	PlanBreakdown      map[string]int64 `json:"planBreakdown"`
}

type contactResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   string    `json:"company,omitempty"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type contactListResponse struct {
	Items []contactResponse `json:"items"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Count int               `json:"count"`
}

type contactUpdateRequest struct {
	Status string `json:"status"`
}

func buildStatsResponse(stats *admindomain.Stats) statsResponse {
	return statsResponse{
		TotalUsers:         stats.TotalUsers,
		TotalOrganizations: stats.TotalOrganizations,
		TotalAssessments:   stats.TotalAssessments,
		TotalResponses:     stats.TotalResponses,
		NewUsersLast30Days: stats.NewUsersLast30Days,
		PlanBreakdown:      stats.PlanBreakdown,
	}
}

func buildContactResponse(message publicdomain.ContactMessage) contactResponse {
	return contactResponse{
		ID:        message.ID,
		Name:      message.Name,
		Email:     message.Email,
		Company:   message.Company,
		Message:   message.Message,
		Status:    string(message.Status),
		CreatedAt: message.CreatedAt,
		UpdatedAt: message.UpdatedAt,
	}
}
