package crawler

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"linkedin-extractor/internal/browser"
	"linkedin-extractor/internal/models"
)

// ProfileExtractor fills a ProfileRecord from a page loaded in its session.
// Every field is best effort: a selector chain that matches nothing leaves
// the field empty and is not an error.
type ProfileExtractor struct {
	session browser.Session
	logger  zerolog.Logger
}

// NewProfileExtractor creates a ProfileExtractor that owns session for its lifetime
func NewProfileExtractor(session browser.Session, logger zerolog.Logger) *ProfileExtractor {
	return &ProfileExtractor{
		session: session,
		logger:  logger.With().Str("component", "extractor").Logger(),
	}
}

// ExtractProfileData navigates to url and extracts every section of the
// profile. Only page-level failures are returned: a navigation error, a
// panic during extraction or a cancelled ctx. In those cases the record is
// nil and any partial work is discarded.
func (pe *ProfileExtractor) ExtractProfileData(ctx context.Context, url string) (record *models.ProfileRecord, err error) {
	log := pe.logger.With().Str("url", url).Logger()

	defer func() {
		if r := recover(); r != nil {
			record = nil
			err = fmt.Errorf("extract %s: unexpected panic: %v", url, r)
			log.Error().Err(err).Msg("profile extraction aborted")
		}
	}()

	if err := pe.session.Navigate(ctx, url); err != nil {
		log.Error().Err(err).Msg("error loading profile page")
		return nil, fmt.Errorf("extract %s: %w", url, err)
	}

	record = models.NewProfileRecord()
	record.PersonalInfo = pe.extractPersonalInfo(ctx)
	record.ProfessionalSummary = pe.extractSummary(ctx)
	record.Experience = pe.extractExperience(ctx)
	record.Education = pe.extractEducation(ctx)
	record.Skills = pe.extractSkills(ctx)

	if err := ctx.Err(); err != nil {
		log.Error().Err(err).Msg("profile extraction interrupted")
		return nil, fmt.Errorf("extract %s: %w", url, err)
	}

	log.Debug().
		Bool("name", record.PersonalInfo.FullName != "").
		Bool("summary", record.ProfessionalSummary != "").
		Int("experience", len(record.Experience)).
		Int("education", len(record.Education)).
		Int("skills", len(record.Skills)).
		Msg("profile extracted")

	return record, nil
}

func (pe *ProfileExtractor) extractPersonalInfo(ctx context.Context) models.PersonalInfo {
	return models.PersonalInfo{
		FullName:        firstText(ctx, pe.session, NameSelectors),
		CurrentPosition: firstText(ctx, pe.session, HeadlineSelectors),
		Location:        firstText(ctx, pe.session, LocationSelectors),
	}
}

func (pe *ProfileExtractor) extractSummary(ctx context.Context) string {
	return firstText(ctx, pe.session, SummarySelectors)
}

func (pe *ProfileExtractor) extractExperience(ctx context.Context) []models.ExperienceEntry {
	return collectItems(ctx, pe.session, ExperienceItemSelectors, MaxExperienceEntries,
		func(item browser.Element) (models.ExperienceEntry, bool) {
			entry := models.ExperienceEntry{
				JobTitle:    firstText(ctx, item, JobTitleSelectors),
				CompanyName: firstText(ctx, item, CompanySelectors),
				Duration:    firstText(ctx, item, DurationSelectors),
			}
			return entry, entry.JobTitle != ""
		})
}

func (pe *ProfileExtractor) extractEducation(ctx context.Context) []models.EducationEntry {
	return collectItems(ctx, pe.session, EducationItemSelectors, MaxEducationEntries,
		func(item browser.Element) (models.EducationEntry, bool) {
			entry := models.EducationEntry{
				InstitutionName: firstText(ctx, item, InstitutionSelectors),
				Degree:          firstText(ctx, item, DegreeSelectors),
			}
			return entry, entry.InstitutionName != ""
		})
}

// extractSkills takes the first selector that yields any skill. Only the
// first MaxSkills matches of that selector are read.
func (pe *ProfileExtractor) extractSkills(ctx context.Context) []string {
	for _, selector := range SkillSelectors {
		elements, err := pe.session.FindAll(ctx, selector)
		if err != nil {
			continue
		}

		skills := []string{}
		seen := make(map[string]struct{})
		for _, el := range limit(elements, MaxSkills) {
			text, err := el.Text(ctx)
			if err != nil {
				continue
			}
			skill := strings.TrimSpace(text)
			if skill == "" {
				continue
			}
			if _, dup := seen[skill]; dup {
				continue
			}
			seen[skill] = struct{}{}
			skills = append(skills, skill)
		}

		if len(skills) > 0 {
			return skills
		}
	}
	return []string{}
}

// collectItems runs the item-container chain and builds one entry per item,
// keeping at most maxItems items. build reports whether the entry has its primary
// field; entries without it are dropped. The first container selector that
// produces a kept entry wins.
func collectItems[T any](ctx context.Context, scope browser.Scope, chain []string, maxItems int, build func(browser.Element) (T, bool)) []T {
	for _, selector := range chain {
		items, err := scope.FindAll(ctx, selector)
		if err != nil {
			continue
		}

		entries := []T{}
		for _, item := range limit(items, maxItems) {
			if entry, ok := build(item); ok {
				entries = append(entries, entry)
			}
		}

		if len(entries) > 0 {
			return entries
		}
	}
	return []T{}
}
