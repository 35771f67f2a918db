package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/velocityrides/template-store/internal/models"
	"github.com/velocityrides/template-store/internal/repository"
)

type ReportService interface {
	SubmitReport(ctx context.Context, templateID, username, issue string) error
}

type reportService struct {
	templateRepo  repository.TemplateRepository
	notifier      Notifier
	notifications *NotificationService
}

func NewReportService(
	templateRepo repository.TemplateRepository,
	notifier Notifier,
	notifications *NotificationService,
) ReportService {
	return &reportService{
		templateRepo:  templateRepo,
		notifier:      notifier,
		notifications: notifications,
	}
}

// SubmitReport relays a template issue to the outbound notifier. Like
// purchase requests, reports are gated on delivery: a failed webhook call
// is surfaced as retryable and nothing is recorded locally.
func (s *reportService) SubmitReport(ctx context.Context, templateID, username, issue string) error {
	if strings.TrimSpace(username) == "" {
		return ErrUsernameRequired
	}
	issue = strings.TrimSpace(issue)
	if issue == "" {
		return ErrIssueRequired
	}

	template, err := s.templateRepo.FindByID(ctx, templateID)
	if err != nil {
		return err
	}
	if template == nil {
		return ErrTemplateNotFound
	}

	notice := ReportNotice{
		Username:   username,
		TemplateID: template.ID,
		Title:      template.Title,
		Image:      template.Image,
		Issue:      issue,
	}
	if err := s.notifier.NotifyReport(ctx, notice); err != nil {
		return fmt.Errorf("%w: %v", ErrNotifierFailed, err)
	}

	_, _ = s.notifications.Record(ctx, username, models.NotificationInfo,
		"Report Submitted",
		fmt.Sprintf("Your report for %q has been sent to the team.", template.Title),
		&template.ID)

	return nil
}
