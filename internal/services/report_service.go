package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/torann10/flowboard-sub000/internal/models"
	"github.com/torann10/flowboard-sub000/internal/report"
	"github.com/torann10/flowboard-sub000/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrReportNotFound        = errors.New("report not found")
	ErrReportNameRequired    = errors.New("report name is required")
	ErrInvalidReportRange    = errors.New("report start date must not be after end date")
	ErrReportNotPermitted    = errors.New("reporter or maintainer role required")
	ErrArtifactUploadFailed  = errors.New("failed to store report artifact")
)

const (
	cocReportName      = "certificate_of_completion"
	activityReportName = "project_activity"
	matrixReportName   = "employee_matrix"

	downloadURLTTL = 5 * time.Minute

	pdfContentType = "application/pdf"
)

// ReportService runs the report pipeline: aggregate, render, encode to PDF,
// upload the artifact and only then persist the metadata row. A failure at
// any stage leaves no trace in the reports table.
type ReportService struct {
	reportRepo  repository.ReportRepository
	projectRepo repository.ProjectRepository

	coc      *report.COCGenerator
	activity *report.ActivityGenerator
	matrix   *report.MatrixGenerator
	renderer *report.Renderer
	encoder  report.Encoder
	store    storageStore
}

// storageStore is the slice of the artifact store the report pipeline needs.
type storageStore interface {
	Upload(ctx context.Context, id string, data []byte) error
	Delete(ctx context.Context, id string) error
	DownloadURL(ctx context.Context, id, contentDisposition, contentType string, ttl time.Duration) (*url.URL, error)
}

// NewReportService creates a new ReportService.
func NewReportService(
	reportRepo repository.ReportRepository,
	projectRepo repository.ProjectRepository,
	coc *report.COCGenerator,
	activity *report.ActivityGenerator,
	matrix *report.MatrixGenerator,
	renderer *report.Renderer,
	encoder report.Encoder,
	store storageStore,
) *ReportService {
	return &ReportService{
		reportRepo:  reportRepo,
		projectRepo: projectRepo,
		coc:         coc,
		activity:    activity,
		matrix:      matrix,
		renderer:    renderer,
		encoder:     encoder,
		store:       store,
	}
}

// CreateCOC generates a Certificate of Completion for the project and window
// and stores it as a PDF report.
func (s *ReportService) CreateCOC(ctx context.Context, userID uint64, req report.Request) (*models.Report, error) {
	project, err := s.requireReportAccess(req.ProjectID, userID)
	if err != nil {
		return nil, err
	}
	if err := validateRange(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	coc, err := s.coc.Generate(req, project)
	if err != nil {
		return nil, err
	}

	html, err := s.renderer.RenderCOC(coc)
	if err != nil {
		return nil, err
	}

	return s.persist(ctx, html, &models.Report{
		Name:      cocReportName,
		ProjectID: &project.ID,
		UserID:    userID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
}

// CreateActivity generates a project activity report for the project and
// window and stores it as a PDF report.
func (s *ReportService) CreateActivity(ctx context.Context, userID uint64, req report.Request) (*models.Report, error) {
	project, err := s.requireReportAccess(req.ProjectID, userID)
	if err != nil {
		return nil, err
	}
	if err := validateRange(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	activity, err := s.activity.Generate(req, project)
	if err != nil {
		return nil, err
	}

	html, err := s.renderer.RenderActivity(activity)
	if err != nil {
		return nil, err
	}

	return s.persist(ctx, html, &models.Report{
		Name:      activityReportName,
		ProjectID: &project.ID,
		UserID:    userID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
}

// CreateMatrix generates the employee matrix over every project the user
// maintains and stores it as a PDF report. When the user maintains no
// projects it passes report.ErrNothingToReport through unchanged.
func (s *ReportService) CreateMatrix(ctx context.Context, userID uint64, start, end time.Time) (*models.Report, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}

	matrix, err := s.matrix.Generate(userID, start, end)
	if err != nil {
		return nil, err
	}

	html, err := s.renderer.RenderMatrix(matrix)
	if err != nil {
		return nil, err
	}

	return s.persist(ctx, html, &models.Report{
		Name:      matrixReportName,
		UserID:    userID,
		StartDate: start,
		EndDate:   end,
	})
}

// ListReports lists the user's reports, newest first.
func (s *ReportService) ListReports(userID uint64) ([]models.Report, error) {
	reports, err := s.reportRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

// RenameReport renames a report owned by the user.
func (s *ReportService) RenameReport(reportID, userID uint64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrReportNameRequired
	}

	affected, err := s.reportRepo.Rename(reportID, userID, name)
	if err != nil {
		return fmt.Errorf("failed to rename report: %w", err)
	}
	if affected == 0 {
		return ErrReportNotFound
	}

	return nil
}

// DeleteReport removes the metadata row and then the stored artifact.
func (s *ReportService) DeleteReport(ctx context.Context, reportID, userID uint64) error {
	rpt, err := s.reportRepo.FindByIDAndUser(reportID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReportNotFound
		}
		return fmt.Errorf("failed to find report: %w", err)
	}

	affected, err := s.reportRepo.Delete(reportID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	if affected == 0 {
		return ErrReportNotFound
	}

	if err := s.store.Delete(ctx, rpt.ArtifactID); err != nil {
		return fmt.Errorf("failed to delete report artifact: %w", err)
	}

	return nil
}

// DownloadURL returns a presigned URL for the report's PDF, valid for five
// minutes and carrying a descriptive attachment filename.
func (s *ReportService) DownloadURL(ctx context.Context, reportID, userID uint64) (*url.URL, error) {
	rpt, err := s.reportRepo.FindByIDAndUser(reportID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to find report: %w", err)
	}

	downloadURL, err := s.store.DownloadURL(ctx, rpt.ArtifactID, rpt.ContentDisposition(), pdfContentType, downloadURLTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to presign download: %w", err)
	}

	return downloadURL, nil
}

// persist encodes the HTML, uploads the PDF under a fresh artifact id and
// writes the metadata row. The row is written last so a storage failure
// never leaves a report pointing at a missing artifact; if the row itself
// cannot be written the uploaded artifact is removed again.
func (s *ReportService) persist(ctx context.Context, html string, rpt *models.Report) (*models.Report, error) {
	pdf, err := s.encoder.Encode(html)
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}

	artifactID := uuid.NewString()
	if err := s.store.Upload(ctx, artifactID, pdf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifactUploadFailed, err)
	}

	rpt.ArtifactID = artifactID
	if err := s.reportRepo.Create(rpt); err != nil {
		if delErr := s.store.Delete(ctx, artifactID); delErr != nil {
			return nil, fmt.Errorf("failed to save report metadata: %w (orphaned artifact %s: %v)", err, artifactID, delErr)
		}
		return nil, fmt.Errorf("failed to save report metadata: %w", err)
	}

	return rpt, nil
}

// requireReportAccess loads the project after checking the user holds the
// reporter or maintainer role on it. Non-members get ErrProjectNotFound.
func (s *ReportService) requireReportAccess(projectID, userID uint64) (*models.Project, error) {
	assignment, err := s.projectRepo.FindUser(projectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find assignment: %w", err)
	}
	if assignment.Role != models.RoleReporter && assignment.Role != models.RoleMaintainer {
		return nil, ErrReportNotPermitted
	}

	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	return project, nil
}

func validateRange(start, end time.Time) error {
	if start.After(end) {
		return ErrInvalidReportRange
	}
	return nil
}
