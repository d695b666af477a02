// Package model contains domain models passed between layers.
package model

// Country identifies a country or region with a normalized ISO 3166-1
// alpha-2 code and a canonical display name. Code may be empty when the
// dataset carries a name with no known mapping.
type Country struct {
	Code string `json:"iso_code,omitempty"`
	Name string `json:"name"`
}

// Metric names one of the ten score columns of the ranking table.
type Metric string

// Score metrics, in canonical column order.
const (
	MetricOverall               Metric = "overall_score"
	MetricAcademicReputation    Metric = "academic_reputation"
	MetricEmployerReputation    Metric = "employer_reputation"
	MetricFacultyStudent        Metric = "faculty_student_ratio"
	MetricCitationsPerFaculty   Metric = "citations_per_faculty"
	MetricInternationalFaculty  Metric = "international_faculty"
	MetricInternationalStudents Metric = "international_students"
	MetricInternationalResearch Metric = "international_research"
	MetricEmploymentOutcomes    Metric = "employment_outcomes"
	MetricSustainability        Metric = "sustainability"
)

// Metrics returns all score metrics in canonical order.
func Metrics() []Metric {
	return []Metric{
		MetricOverall,
		MetricAcademicReputation,
		MetricEmployerReputation,
		MetricFacultyStudent,
		MetricCitationsPerFaculty,
		MetricInternationalFaculty,
		MetricInternationalStudents,
		MetricInternationalResearch,
		MetricEmploymentOutcomes,
		MetricSustainability,
	}
}

// Label returns the human-readable label for a metric.
func (m Metric) Label() string {
	switch m {
	case MetricOverall:
		return "Overall Score"
	case MetricAcademicReputation:
		return "Academic Reputation"
	case MetricEmployerReputation:
		return "Employer Reputation"
	case MetricFacultyStudent:
		return "Faculty Student Ratio"
	case MetricCitationsPerFaculty:
		return "Citations per Faculty"
	case MetricInternationalFaculty:
		return "International Faculty"
	case MetricInternationalStudents:
		return "International Students"
	case MetricInternationalResearch:
		return "International Research Network"
	case MetricEmploymentOutcomes:
		return "Employment Outcomes"
	case MetricSustainability:
		return "Sustainability"
	default:
		return string(m)
	}
}

// Record is one row of the ranking table: a university's entry for one
// publication year. Records are immutable once loaded.
type Record struct {
	University string // case-preserving; matched case-insensitively

	Year int

	// Rank is the numeric sort key for the published rank. Display ranks
	// expressed as a range ("601-650") sort by the range start; ties
	// ("=12") sort by the shared position. Meaningful only when Ranked.
	Rank        int
	RankDisplay string
	Ranked      bool

	Country Country

	// Scores holds the metrics the university reported this year. Missing
	// metrics are simply absent.
	Scores map[Metric]float64
}

// Score returns the value of a metric and whether it is present.
func (r *Record) Score(m Metric) (float64, bool) {
	v, ok := r.Scores[m]
	return v, ok
}

// Overall returns the overall score and whether it is present.
func (r *Record) Overall() (float64, bool) {
	return r.Score(MetricOverall)
}
