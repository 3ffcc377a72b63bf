package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/faisalcam/cctv-shop-api/internal/models"
	appErrors "github.com/faisalcam/cctv-shop-api/pkg/errors"
	"github.com/faisalcam/cctv-shop-api/pkg/export"
)

// ExportFormat selects the rendered file type.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportFile is a rendered export ready to stream to the client.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders warranty and claim listings as downloadable files.
type ExportService struct {
	warranties *WarrantyService
	claims     *ClaimService
	csv        *export.CSVExporter
	pdf        *export.PDFExporter
	logger     *zap.Logger
}

// NewExportService builds an export service over the listing services.
func NewExportService(warranties *WarrantyService, claims *ClaimService, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		warranties: warranties,
		claims:     claims,
		csv:        export.NewCSVExporter(),
		pdf:        export.NewPDFExporter(),
		logger:     logger,
	}
}

// exportPageSize loads listings in full pages; exports ignore the caller's
// pagination.
const exportPageSize = 100

// Warranties renders the filtered warranty listing.
func (s *ExportService) Warranties(ctx context.Context, filter models.WarrantyFilter, format ExportFormat) (*ExportFile, error) {
	headers := []string{"Warranty ID", "Customer", "Phone", "Product", "Qty", "Purchased", "Valid Until", "Status"}
	var rows []map[string]string

	filter.PageSize = exportPageSize
	for page := 1; ; page++ {
		filter.Page = page
		records, pagination, err := s.warranties.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		for _, r := range records {
			productName := r.ProductID
			if r.Product != nil {
				productName = r.Product.ProductName
			}
			rows = append(rows, map[string]string{
				"Warranty ID": r.WarrantyID,
				"Customer":    r.CustomerName,
				"Phone":       r.PhoneNumber,
				"Product":     productName,
				"Qty":         strconv.Itoa(r.QuantityPurchased),
				"Purchased":   r.PurchaseDate.Format("2006-01-02"),
				"Valid Until": r.WarrantyValidUntil.Format("2006-01-02"),
				"Status":      string(r.WarrantyStatus),
			})
		}
		if page*exportPageSize >= pagination.TotalCount {
			break
		}
	}

	return s.render("warranties", "Warranty Records", headers, rows, format)
}

// Claims renders the filtered claim listing.
func (s *ExportService) Claims(ctx context.Context, filter models.ClaimFilter, format ExportFormat) (*ExportFile, error) {
	headers := []string{"Claim ID", "Customer", "Phone", "Warranty ID", "Issue", "Status", "Resolved At", "Created At"}
	var rows []map[string]string

	filter.PageSize = exportPageSize
	for page := 1; ; page++ {
		filter.Page = page
		claims, pagination, err := s.claims.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		for _, c := range claims {
			warrantyID := c.WarrantyRecordID
			if c.WarrantyRecord != nil {
				warrantyID = c.WarrantyRecord.WarrantyID
			}
			resolved := ""
			if c.ResolvedAt != nil {
				resolved = c.ResolvedAt.Format("2006-01-02 15:04")
			}
			rows = append(rows, map[string]string{
				"Claim ID":    c.ClaimID,
				"Customer":    c.CustomerName,
				"Phone":       c.PhoneNumber,
				"Warranty ID": warrantyID,
				"Issue":       c.IssueDescription,
				"Status":      string(c.ClaimStatus),
				"Resolved At": resolved,
				"Created At":  c.CreatedAt.Format("2006-01-02 15:04"),
			})
		}
		if page*exportPageSize >= pagination.TotalCount {
			break
		}
	}

	return s.render("claims", "Warranty Claims", headers, rows, format)
}

func (s *ExportService) render(name, title string, headers []string, rows []map[string]string, format ExportFormat) (*ExportFile, error) {
	dataset := export.Dataset{Headers: headers, Rows: rows}
	stamp := time.Now().UTC().Format("20060102-150405")

	switch ExportFormat(strings.ToLower(string(format))) {
	case ExportFormatCSV, "":
		data, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportFile{
			Filename:    name + "-" + stamp + ".csv",
			ContentType: "text/csv",
			Data:        data,
		}, nil
	case ExportFormatPDF:
		data, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportFile{
			Filename:    name + "-" + stamp + ".pdf",
			ContentType: "application/pdf",
			Data:        data,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
}
