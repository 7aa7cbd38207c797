package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/kamal-hamza/wp-cli/internal/core/domain"
	"github.com/kamal-hamza/wp-cli/internal/core/ports"
	"github.com/kamal-hamza/wp-cli/pkg/metadata"
)

// Severity ranks a check finding
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a problem found in a generated page
type Issue struct {
	ID       string
	Severity Severity
	Message  string
}

// CheckService re-reads generated pages and reports structural problems.
// It never checks that attachment files exist.
type CheckService struct {
	repo ports.DocumentRepository
	md   goldmark.Markdown
}

// NewCheckService creates a new page checking service
func NewCheckService(repo ports.DocumentRepository) *CheckService {
	return &CheckService{
		repo: repo,
		md:   goldmark.New(),
	}
}

// CheckRequest represents a request to check the output directory
type CheckRequest struct {
	// AssetsBase is the prefix attachment links are expected under
	AssetsBase string
}

// CheckResponse represents the outcome of a check
type CheckResponse struct {
	Checked int
	Issues  []Issue
}

// Errors counts error-level issues
func (r *CheckResponse) Errors() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			n++
		}
	}
	return n
}

// Execute checks every page in the repository
func (s *CheckService) Execute(ctx context.Context, req CheckRequest) (*CheckResponse, error) {
	ids, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := &CheckResponse{}
	permalinks := make(map[string]string)

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return resp, err
		}

		content, err := s.repo.Read(ctx, id)
		if err != nil {
			return resp, err
		}
		resp.Checked++

		issues, header := s.checkPage(id, content, req)
		resp.Issues = append(resp.Issues, issues...)

		if header != nil && header.Permalink != "" {
			if other, ok := permalinks[header.Permalink]; ok {
				resp.Issues = append(resp.Issues, Issue{
					ID:       id,
					Severity: SeverityError,
					Message:  fmt.Sprintf("permalink %s already used by %s", header.Permalink, other),
				})
			} else {
				permalinks[header.Permalink] = id
			}
		}
	}

	return resp, nil
}

func (s *CheckService) checkPage(id string, content []byte, req CheckRequest) ([]Issue, *metadata.Header) {
	var issues []Issue
	add := func(sev Severity, format string, args ...any) {
		issues = append(issues, Issue{ID: id, Severity: sev, Message: fmt.Sprintf(format, args...)})
	}

	header, body, err := metadata.Parse(content)
	if err != nil {
		add(SeverityError, "%v", err)
		return issues, nil
	}

	for _, perr := range header.Validate() {
		add(SeverityError, "%v", perr)
	}

	if header.WorkID != "" && header.WorkID != id {
		add(SeverityError, "work_id %s does not match filename %s", header.WorkID, domain.DocumentFilename(id))
	}
	if header.Date != "" && !isISODate(header.Date) {
		add(SeverityWarning, "date %q is not YYYY-MM-DD", header.Date)
	}
	if header.CatalogueDate != nil && !isISODate(*header.CatalogueDate) {
		add(SeverityWarning, "catalogue_date %q is not YYYY-MM-DD", *header.CatalogueDate)
	}

	if req.AssetsBase != "" {
		prefix := domain.AttachmentURL(req.AssetsBase, id, "")
		for _, link := range s.supplementLinks(body) {
			if !strings.HasPrefix(link, prefix) {
				add(SeverityWarning, "supplement link %s is outside %s", link, prefix)
			}
		}
	}

	if !strings.HasSuffix(string(content), "\n") || strings.HasSuffix(string(content), "\n\n\n") {
		add(SeverityWarning, "page should end with a single newline")
	}

	return issues, header
}

// supplementLinks returns link destinations listed under the supplements heading
func (s *CheckService) supplementLinks(body []byte) []string {
	doc := s.md.Parser().Parse(text.NewReader(body))
	heading := strings.TrimPrefix(domain.SupplementsHeading, "## ")

	var links []string
	inSupplements := false
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok {
			inSupplements = h.Level == 2 && nodeText(h, body) == heading
			continue
		}
		if !inSupplements {
			continue
		}
		_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
			if link, ok := child.(*ast.Link); ok && entering {
				links = append(links, string(link.Destination))
			}
			return ast.WalkContinue, nil
		})
	}
	return links
}

func nodeText(n ast.Node, source []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			b.Write(t.Segment.Value(source))
		}
	}
	return strings.TrimSpace(b.String())
}

func isISODate(s string) bool {
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}
