package crawler

// Selector chains for each profile field, most specific first. Each chain
// covers the layouts the site has shipped; when markup changes, add the new
// selector at the head of the chain rather than replacing the old ones.
var (
	NameSelectors = []string{
		"h1.text-heading-xlarge",
		"h1.inline.t-24.v-align-middle.break-words",
		".pv-text-details__left-panel h1",
		"h1",
	}

	HeadlineSelectors = []string{
		".text-body-medium.break-words",
		".pv-text-details__left-panel .text-body-medium",
		".ph5.pb5 .text-body-medium",
	}

	LocationSelectors = []string{
		".text-body-small.inline.t-black--light.break-words",
		".pv-text-details__left-panel .text-body-small",
		".ph5.pb5 .text-body-small",
	}

	SummarySelectors = []string{
		"#about ~ .artdeco-card .full-width",
		".pv-about-section .pv-about__summary-text",
		"[data-section='summary'] .full-width",
	}
)

// Experience section: item containers, then per-item field chains.
var (
	ExperienceItemSelectors = []string{
		"#experience ~ .artdeco-card .pvs-list__paged-list-item",
		".pv-profile-section.experience-section .pv-entity__summary-info",
		"[data-section='experience'] .pv-entity__summary-info",
	}

	JobTitleSelectors = []string{
		".mr1.hoverable-link-text",
		".pv-entity__summary-info h3",
		".t-16.t-black.t-bold",
	}

	CompanySelectors = []string{
		".t-14.t-normal .hoverable-link-text",
		".pv-entity__secondary-title",
		".t-14.t-black--light.t-normal",
	}

	DurationSelectors = []string{
		".t-14.t-normal.t-black--light",
		".pv-entity__bullet-item",
		".t-12.t-black--light.t-normal",
	}
)

// Education section.
var (
	EducationItemSelectors = []string{
		"#education ~ .artdeco-card .pvs-list__paged-list-item",
		".pv-profile-section.education-section .pv-entity__summary-info",
		"[data-section='education'] .pv-entity__summary-info",
	}

	InstitutionSelectors = []string{
		".mr1.hoverable-link-text",
		".pv-entity__school-name",
		".t-16.t-black.t-bold",
	}

	DegreeSelectors = []string{
		".t-14.t-normal",
		".pv-entity__degree-name",
		".pv-entity__secondary-title",
	}
)

// SkillSelectors match the skill name elements directly
var SkillSelectors = []string{
	"#skills ~ .artdeco-card .mr1.hoverable-link-text",
	".pv-skill-category-entity__name-text",
	"[data-section='skills'] .pv-skill-category-entity__name-text",
}

const (
	MaxExperienceEntries = 5
	MaxEducationEntries  = 3
	MaxSkills            = 20
)
