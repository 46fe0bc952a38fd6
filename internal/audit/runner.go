package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gymbeam/geoaudit/internal/domain"
	"github.com/gymbeam/geoaudit/internal/logging"
)

// Default checklist thresholds.
const (
	defaultMinHeadings   = 3
	defaultMinFacts      = 3
	defaultMinWords      = 500
	defaultMetaMinLength = 120
	defaultMetaMaxLength = 160
)

// defaultAllowedSourceHosts hosts scientific and medical literature.
var defaultAllowedSourceHosts = []string{
	"pubmed.ncbi.nlm.nih.gov",
	"pmc.ncbi.nlm.nih.gov",
	"examine.com",
}

// defaultTermStopList holds colon-title prefixes that are series labels,
// not terms.
var defaultTermStopList = []string{"fitness recept"}

// Config holds checklist configuration. It is loaded once and read-only
// for the lifetime of a Runner; tests substitute alternate allowlists by
// building their own Runner.
type Config struct {
	MinHeadings        int      `yaml:"min_headings"`
	MinFacts           int      `yaml:"min_facts"`
	MinWords           int      `yaml:"min_words"`
	MetaMinLength      int      `yaml:"meta_min_length"`
	MetaMaxLength      int      `yaml:"meta_max_length"`
	AllowedSourceHosts []string `yaml:"allowed_source_hosts"`
	TermStopList       []string `yaml:"term_stop_list"`
	DeferralPhrases    []string `yaml:"deferral_phrases"`
	FoldDiacritics     bool     `yaml:"fold_diacritics"`
}

// SetDefaults applies default values to unset fields. An explicitly empty
// allowlist stays empty; only a nil slice gets the default hosts.
func (c *Config) SetDefaults() {
	if c.MinHeadings == 0 {
		c.MinHeadings = defaultMinHeadings
	}
	if c.MinFacts == 0 {
		c.MinFacts = defaultMinFacts
	}
	if c.MinWords == 0 {
		c.MinWords = defaultMinWords
	}
	if c.MetaMinLength == 0 {
		c.MetaMinLength = defaultMetaMinLength
	}
	if c.MetaMaxLength == 0 {
		c.MetaMaxLength = defaultMetaMaxLength
	}
	if c.AllowedSourceHosts == nil {
		c.AllowedSourceHosts = defaultAllowedSourceHosts
	}
	if c.TermStopList == nil {
		c.TermStopList = defaultTermStopList
	}
}

// Runner runs the registered checklist over one article and assembles a
// report. It is stateless across articles and safe for concurrent use on
// independent Article values.
type Runner struct {
	criteria  []Criterion
	extractor *TermExtractor
	allowlist *Allowlist
	logger    logging.Logger
}

// NewRunner builds the checklist in display order from the configuration.
func NewRunner(logger logging.Logger, cfg Config) *Runner {
	cfg.SetDefaults()
	if logger == nil {
		logger = logging.Nop()
	}

	allowlist := NewAllowlist(cfg.AllowedSourceHosts)
	criteria := []Criterion{
		NewDirectAnswerCriterion(cfg.DeferralPhrases),
		NewDefinitionCriterion(cfg.FoldDiacritics),
		NewHeadingsCriterion(cfg.MinHeadings),
		NewFactsCriterion(cfg.MinFacts),
		NewSourcesCriterion(allowlist),
		NewFAQCriterion(),
		NewListsCriterion(),
		NewTablesCriterion(),
		NewWordCountCriterion(cfg.MinWords),
		NewMetaDescriptionCriterion(cfg.MetaMinLength, cfg.MetaMaxLength),
	}

	logger.Info("checklist runner initialized",
		logging.Int("criteria", len(criteria)),
		logging.Int("allowed_hosts", len(allowlist.Hosts())),
	)

	return &Runner{
		criteria:  criteria,
		extractor: NewTermExtractor(cfg.TermStopList),
		allowlist: allowlist,
		logger:    logger,
	}
}

// Audit evaluates every registered criterion against one article and
// assembles an immutable report. Criteria are independent: none may
// mutate the article, and one faulting criterion never aborts the rest.
func (r *Runner) Audit(ctx context.Context, a *domain.Article) *domain.Report {
	start := time.Now()
	subject := newSubject(a, r.extractor)

	verdicts := make([]domain.Verdict, 0, len(r.criteria))
	score := 0
	for _, criterion := range r.criteria {
		verdict := r.evaluate(ctx, criterion, subject)
		if verdict.Passed() {
			score++
		}
		verdicts = append(verdicts, verdict)
	}

	report := &domain.Report{
		ID:           uuid.NewString(),
		ArticleID:    a.ID,
		ArticleURL:   a.URL,
		ArticleTitle: a.Title,
		Verdicts:     verdicts,
		Score:        score,
		MaxScore:     len(r.criteria),
		GeneratedAt:  time.Now(),
	}

	r.logger.Debug("audit complete",
		logging.Int("article_id", a.ID),
		logging.Int("score", score),
		logging.Int("max_score", report.MaxScore),
		logging.Duration("duration", time.Since(start)),
	)

	return report
}

// evaluate isolates one criterion. A panic or internal error becomes an
// error-status verdict for that criterion only.
func (r *Runner) evaluate(ctx context.Context, c Criterion, s *Subject) (verdict domain.Verdict) {
	meta := c.Meta()

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("criterion panicked",
				logging.String("criterion", string(meta.ID)),
				logging.Int("article_id", s.Article.ID),
				logging.Any("panic", rec),
			)
			verdict = domain.Verdict{
				CriterionID: meta.ID,
				Status:      domain.StatusError,
				Rationale:   fmt.Sprintf("criterion panicked: %v", rec),
			}
		}
	}()

	v, err := c.Evaluate(ctx, s)
	if err != nil {
		r.logger.Warn("criterion failed internally",
			logging.String("criterion", string(meta.ID)),
			logging.Int("article_id", s.Article.ID),
			logging.Err(err),
		)
		return domain.Verdict{
			CriterionID: meta.ID,
			Status:      domain.StatusError,
			Rationale:   err.Error(),
		}
	}
	return v
}

// Criteria returns checklist metadata in display order.
func (r *Runner) Criteria() []domain.CriterionMeta {
	metas := make([]domain.CriterionMeta, 0, len(r.criteria))
	for _, c := range r.criteria {
		metas = append(metas, c.Meta())
	}
	return metas
}

// Allowlist returns the active citation allowlist.
func (r *Runner) Allowlist() *Allowlist {
	return r.allowlist
}
