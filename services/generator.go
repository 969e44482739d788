package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"qp-generator-backend/internal/logger"
	"qp-generator-backend/models"
)

// ModelClient is the hosted-model round trip used by the generator. The
// production implementation is ai.GeminiClient; tests substitute a stub.
type ModelClient interface {
	GenerateJSON(ctx context.Context, prompt string, temperature float32) (string, error)
}

// Per-task temperatures, trading determinism for variety in question
// selection.
const (
	tempOutcomes  = 0.7
	tempQuestions = 0.8
	tempFullExam  = 0.8
	tempQuiz      = 0.8
	tempChat      = 0.7
)

// Generator builds task-specific prompts around retrieved context and returns
// the model's raw JSON output. Each call is a single stateless round trip.
type Generator struct {
	model ModelClient
}

func NewGenerator(model ModelClient) *Generator {
	return &Generator{model: model}
}

// GenerateCourseOutcomes asks the model for exactly five course outcomes.
// Malformed or non-conforming output is replaced by the fixed placeholder
// set; transport errors propagate.
func (g *Generator) GenerateCourseOutcomes(ctx context.Context, subject, context_ string) ([]string, error) {
	prompt := fmt.Sprintf(`You are an expert curriculum designer.
Generate exactly 5 Course Outcomes (CO1 to CO5) for the subject: %s, based loosely on the following context.
Return ONLY a JSON object with a list of strings:
{
    "course_outcomes": [
        "CO1: Explain the...",
        "CO2: Apply...",
        "CO3: Analyze...",
        "CO4: Evaluate...",
        "CO5: Design..."
    ]
}
Context: %s`, subject, context_)

	raw, err := g.model.GenerateJSON(ctx, prompt, tempOutcomes)
	if err != nil {
		return nil, err
	}

	outcomes, ok := models.ParseCourseOutcomes(raw)
	if !ok {
		logger.Warn("Model returned malformed course outcomes, using defaults", "subject", subject)
	}
	return outcomes, nil
}

// QuestionParams are the knobs for targeted question generation.
type QuestionParams struct {
	Subject        string
	Context        string
	Marks          int
	Count          int
	CourseOutcomes []string
	CustomPrompt   string
}

// GenerateQuestions produces count questions at a single mark allocation in
// the question-paper JSON schema. Output is returned raw.
func (g *Generator) GenerateQuestions(ctx context.Context, p QuestionParams) (string, error) {
	instructions := p.CustomPrompt
	if instructions == "" {
		instructions = "Ensure questions map to relevant Course Outcomes (CO1-CO5)."
	}

	prompt := fmt.Sprintf(`You are an expert academic question paper generator for the subject: %s.
CRITICAL: Extract and select questions EXACTLY as they appear in the provided context materials (which serve as a question bank).
Do NOT invent or generate your own new questions. Only use questions that are explicitly present in the text.
Randomly select different topics to ensure a wide coverage across all modules/units. Do NOT repeat questions from previous tests or within this generation.

Generate exactly %d question(s) suitable for a %d-mark allocation.

Guidelines:
- 2 marks: Short, direct answer, definition or basic concept.
- 10 marks/16 marks: Long answer, analytical, design-oriented, or comprehensive explanation.
- Each 16 mark question generated MUST have an internal 'OR' choice.

Context:
%s

Additional Instructions:
%s

You MUST output ONLY a valid JSON object matching the St. Xavier's template schema below. No markdown formatting outside the JSON block.
{
    "metadata": {
        "subject_code": "CUSTOM",
        "subject_name": "%s",
        "class_name": "Custom Generation",
        "exam_name": "Practice Questions",
        "time": "N/A",
        "max_marks": "%d Marks"
    },
    "course_outcomes": %s,
    "part_a": [ (Include only if marks == 2. Array of objects: { "q_no": 1, "question": "...", "marks": 2, "cl": "Un", "co": "CO1" } ) ],
    "part_b": [ (Include only if marks >= 10. Array of objects where each has option_a and option_b if 16m with OR is requested. Or just option_a if no OR choice. Format: { "q_no": 10, "option_a": { "sub_q": "a)", "question": "...", "marks": %d, "cl": "Un", "co": "CO1" }, "option_b": {...} } ) ]
}`,
		p.Subject, p.Count, p.Marks, p.Context, instructions,
		p.Subject, p.Marks*p.Count, marshalOutcomes(p.CourseOutcomes), p.Marks)

	return g.model.GenerateJSON(ctx, prompt, tempQuestions)
}

// GenerateFullExam produces a complete 50-mark internal exam paper: 9 two-mark
// questions in Part-A and two 16-mark OR-choice questions in Part-B.
func (g *Generator) GenerateFullExam(ctx context.Context, subject, context_ string, outcomes []string) (string, error) {
	prompt := fmt.Sprintf(`You are an expert academic examiner for: %s.
Generate a complete Internal Exam Question Paper adhering STRICTLY to the following "St. Xavier's Catholic College of Engineering" format.

CRITICAL: Extract and select questions EXACTLY as they appear in the provided context materials (which serve as a question bank).
Do NOT invent or generate your own new questions. Only use questions that are explicitly present in the text.

Maximum Marks: 50 Marks
Time: 90 Minutes

Structure constraints:
- Part-A: 9 Questions x 2 Marks = 18 Marks total. Generate exactly 9 short-answer questions.
- Part-B: 2 Questions x 16 Marks = 32 Marks total. Each 16-mark question MUST have an internal 'OR' choice (i.e. Q10a OR Q10b, and Q11a OR Q11b). Generate exactly 4 descriptive questions matching this layout.

Metadata constraints (Include these tags for EVERY question generated):
- Cognitive Level (CL): Tag as [Re] for Remember, [Un] for Understand, [Ap] for Apply, [An] for Analyze, [Ev] for Evaluate, or [Cr] for Create.
- Course Outcome (CO): Tag as [CO1], [CO2], [CO3], [CO4], or [CO5].

Use the following syllabus/material context to base your extraction upon (do not invent topics outside of this context).
CRITICAL: Randomly select topics from across ALL available units/context to ensure a highly balanced paper. Do NOT clump questions from a single unit. Ensure all 5 Course Outcomes (CO1-CO5) are covered across the paper.
%s

You MUST output ONLY a valid JSON object with the following schema, and absolutely no other text, markdown formatting, or code blocks outside the JSON:
{
    "metadata": {
        "subject_code": "IT22611",
        "subject_name": "%s",
        "class_name": "B.Tech. Information Technology (Semester:6)",
        "exam_name": "Internal Exam I, 2025 - 2026 [EVEN]",
        "time": "90 Minutes",
        "max_marks": "50 Marks"
    },
    "course_outcomes": %s,
    "part_a": [
        { "q_no": 1, "question": "...", "marks": 2, "cl": "Un", "co": "CO1" },
        ... 9 questions total
    ],
    "part_b": [
        {
            "q_no": 10,
            "option_a": { "sub_q": "a)", "question": "...", "marks": 16, "cl": "Un", "co": "CO1" },
            "option_b": { "sub_q": "b)", "question": "...", "marks": 16, "cl": "Un", "co": "CO1" }
        },
        {
            "q_no": 11,
            "option_a": { "sub_q": "a)", "question": "...", "marks": 16, "cl": "Ap", "co": "CO2" },
            "option_b": { "sub_q": "b)", "question": "...", "marks": 16, "cl": "Ap", "co": "CO2" }
        }
    ]
}`, subject, context_, subject, marshalOutcomes(outcomes))

	return g.model.GenerateJSON(ctx, prompt, tempFullExam)
}

// GenerateQuiz produces a marks-question quiz, either multiple choice or
// fill-in-the-blanks, one mark per question.
func (g *Generator) GenerateQuiz(ctx context.Context, subject, context_ string, marks int, quizType string) (string, error) {
	prompt := fmt.Sprintf(`You are an expert academic quiz generator for the subject: %s.
CRITICAL: Extract and frame questions based EXACTLY on the provided context materials.

Task: Generate a %d-question %s quiz. Each question is worth 1 mark.

Instructions for %s:
- If 'mcq' (Multiple Choice Questions): Generate a question and exactly 4 options (A, B, C, D) with the correct option identified.
- If 'fill_blanks': Generate a statement with a clear blank (___) and provide the correct exact word/phrase answer.

Context:
%s

You MUST output ONLY a valid JSON object matching the schema below.

Example Schema for MCQ (Output ONLY JSON):
{
    "metadata": { "subject_name": "%s", "exam_name": "Multiple Choice Quiz", "max_marks": "%d" },
    "quiz_type": "mcq",
    "questions": [
        { "q_no": 1, "question": "...", "options": ["A) ...", "B) ...", "C) ...", "D) ..."], "answer": "B) ..." }
    ]
}

Example Schema for Fill in the Blanks (Output ONLY JSON):
{
    "metadata": { "subject_name": "%s", "exam_name": "Fill in the Blanks Quiz", "max_marks": "%d" },
    "quiz_type": "fill_blanks",
    "questions": [
        { "q_no": 1, "question": "The powerhouse of the cell is the ___.", "answer": "Mitochondria" }
    ]
}`,
		subject, marks, strings.ToUpper(quizType), quizType, context_,
		subject, marks, subject, marks)

	return g.model.GenerateJSON(ctx, prompt, tempQuiz)
}

// GenerateChat answers a free-form request. The model is instructed to emit
// the question-paper schema when asked for questions, and a text_response
// object otherwise.
func (g *Generator) GenerateChat(ctx context.Context, subject, context_, message string, outcomes []string) (string, error) {
	prompt := fmt.Sprintf(`You are an expert AI teaching assistant and academic examiner for the subject: %s.
Use the following syllabus/material context to comprehensively answer the user's request.

Context:
%s

User Request: %s

CRITICAL INSTRUCTION:
If the user is asking you to generate questions (e.g., "give me 10 2 mark questions", "generate a paper", etc.), you MUST output ONLY a valid JSON object matching the St. Xavier's template schema below.
DO NOT use the text_response key if generating questions. You MUST use the root keys metadata, course_outcomes, part_a, and part_b.
If they specify only 2 marks, put them ALL in part_a, and leave part_b as an empty array [].
If they specify only 16 marks, put them ALL in part_b (each with option_a and option_b), and leave part_a as an empty array [].
If they don't specify marks, default to a balanced Part A (2 marks) and Part B (16 marks with OR choice).

If the user is NOT asking for questions (e.g., "summarize unit 1", "explain this concept"), you must STILL output a JSON object, but place your text/HTML response inside a single field called text_response, and DO NOT include metadata, part_a, or part_b.

Example Schema for Question Generation (Output ONLY JSON):
{
    "metadata": {
        "subject_code": "CUSTOM",
        "subject_name": "%s",
        "class_name": "Custom Generation",
        "exam_name": "Custom Request",
        "time": "N/A",
        "max_marks": "N/A"
    },
    "course_outcomes": %s,
    "part_a": [
        { "q_no": 1, "question": "...", "marks": 2, "cl": "Un", "co": "CO1" }
    ],
    "part_b": [
        {
            "q_no": 10,
            "option_a": { "sub_q": "a)", "question": "...", "marks": 16, "cl": "Un", "co": "CO1" },
            "option_b": { "sub_q": "b)", "question": "...", "marks": 16, "cl": "Un", "co": "CO1" }
        }
    ]
}

Example Schema for non-question/normal chat responses (Output ONLY JSON):
{
    "text_response": "Your full explanation with <b>HTML</b> formatting here."
}`, subject, context_, message, subject, marshalOutcomes(outcomes))

	return g.model.GenerateJSON(ctx, prompt, tempChat)
}

// marshalOutcomes embeds the course-outcome list as JSON inside a prompt.
func marshalOutcomes(outcomes []string) string {
	data, err := json.Marshal(outcomes)
	if err != nil {
		return "[]"
	}
	return string(data)
}
