package models

import "encoding/json"

// The model is instructed to emit question papers in this schema. The API
// returns its output raw, so these types exist for consumers that want a
// typed decode and for the course-outcome extraction below.

type ExamMetadata struct {
	SubjectCode string `json:"subject_code"`
	SubjectName string `json:"subject_name"`
	ClassName   string `json:"class_name"`
	ExamName    string `json:"exam_name"`
	Time        string `json:"time"`
	MaxMarks    string `json:"max_marks"`
}

type PartAQuestion struct {
	QNo      int    `json:"q_no"`
	Question string `json:"question"`
	Marks    int    `json:"marks"`
	CL       string `json:"cl"` // Cognitive level: Re, Un, Ap, An, Ev, Cr
	CO       string `json:"co"` // Course outcome tag: CO1..CO5
}

type PartBOption struct {
	SubQ     string `json:"sub_q"`
	Question string `json:"question"`
	Marks    int    `json:"marks"`
	CL       string `json:"cl"`
	CO       string `json:"co"`
}

// PartBQuestion carries an internal 'OR' choice; OptionB is nil when the
// question has no alternative.
type PartBQuestion struct {
	QNo     int          `json:"q_no"`
	OptionA *PartBOption `json:"option_a"`
	OptionB *PartBOption `json:"option_b,omitempty"`
}

type QuestionPaper struct {
	Metadata       ExamMetadata    `json:"metadata"`
	CourseOutcomes []string        `json:"course_outcomes"`
	PartA          []PartAQuestion `json:"part_a"`
	PartB          []PartBQuestion `json:"part_b"`
}

type QuizMetadata struct {
	SubjectName string `json:"subject_name"`
	ExamName    string `json:"exam_name"`
	MaxMarks    string `json:"max_marks"`
}

type QuizQuestion struct {
	QNo      int      `json:"q_no"`
	Question string   `json:"question"`
	Options  []string `json:"options,omitempty"` // mcq only
	Answer   string   `json:"answer"`
}

type Quiz struct {
	Metadata  QuizMetadata   `json:"metadata"`
	QuizType  string         `json:"quiz_type"`
	Questions []QuizQuestion `json:"questions"`
}

// courseOutcomeCount is fixed: papers always tag against CO1-CO5.
const courseOutcomeCount = 5

// DefaultCourseOutcomes returns the placeholder set used whenever the model's
// output cannot be trusted.
func DefaultCourseOutcomes() []string {
	return []string{
		"CO1: Analyze basics",
		"CO2: Apply concepts",
		"CO3: Design systems",
		"CO4: Evaluate performance",
		"CO5: Create solutions",
	}
}

// ParseCourseOutcomes treats model output as untrusted: it must be a JSON
// object with a course_outcomes list of exactly five non-empty strings.
// Anything else yields the placeholder set. The second return value reports
// whether the model output was accepted.
func ParseCourseOutcomes(raw string) ([]string, bool) {
	var payload struct {
		CourseOutcomes []string `json:"course_outcomes"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return DefaultCourseOutcomes(), false
	}
	if len(payload.CourseOutcomes) != courseOutcomeCount {
		return DefaultCourseOutcomes(), false
	}
	for _, co := range payload.CourseOutcomes {
		if co == "" {
			return DefaultCourseOutcomes(), false
		}
	}
	return payload.CourseOutcomes, true
}
