package services

import (
	"strings"
	"testing"
)

func TestAnswerFromCourseContextDefinition(t *testing.T) {
	context := "JavaScript closures capture surrounding variables. Arrow functions keep the outer scope."

	t.Run("matching_sentence", func(t *testing.T) {
		got := answerFromCourseContext("What are closures?", context, "JavaScript Basics")
		want := "JavaScript closures capture surrounding variables."
		if got != want {
			t.Fatalf("answer=%q, want %q", got, want)
		}
	})

	t.Run("explain_keyword_also_matches", func(t *testing.T) {
		got := answerFromCourseContext("explain closures please", context, "JavaScript Basics")
		want := "JavaScript closures capture surrounding variables."
		if got != want {
			t.Fatalf("answer=%q, want %q", got, want)
		}
	})

	t.Run("no_sentence_match_quotes_context", func(t *testing.T) {
		got := answerFromCourseContext("define monads", "Pods run containers. Nodes run pods.", "Kubernetes 101")
		if !strings.HasPrefix(got, "According to Kubernetes 101: ") {
			t.Fatalf("answer=%q, want the course-level fallback", got)
		}
		if !strings.HasSuffix(got, "...") {
			t.Fatalf("answer=%q, want trailing ellipsis", got)
		}
	})
}

func TestAnswerFromCourseContextHow(t *testing.T) {
	got := answerFromCourseContext("How do I deploy?", "Build the image, push it, apply the manifest.", "Cloud Computing")
	if !strings.HasPrefix(got, "The course 'Cloud Computing' covers this step by step. The key points: ") {
		t.Fatalf("answer=%q, want the step-by-step framing", got)
	}
}

func TestAnswerFromCourseContextDefault(t *testing.T) {
	t.Run("short_context_quoted_whole", func(t *testing.T) {
		got := answerFromCourseContext("tell me about the course", "A gentle intro to SQL.", "Databases")
		want := "Based on Databases: A gentle intro to SQL."
		if got != want {
			t.Fatalf("answer=%q, want %q", got, want)
		}
	})

	t.Run("long_context_bounded", func(t *testing.T) {
		long := strings.Repeat("Relational theory underpins every query engine. ", 12)
		got := answerFromCourseContext("tell me about the course", long, "Databases")
		if !strings.HasPrefix(got, "Based on Databases: ") {
			t.Fatalf("answer=%q, want the bounded quote prefix", got)
		}
		if !strings.HasSuffix(got, "...") {
			t.Fatalf("answer=%q, want trailing ellipsis", got)
		}
		if len(got) > len("Based on Databases: ")+403 {
			t.Fatalf("answer length %d exceeds the 400-character bound", len(got))
		}
	})
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"shorter_untouched", "abc", 10, "abc"},
		{"exact_untouched", "abcde", 5, "abcde"},
		{"longer_cut", "abcdef", 4, "abcd"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := truncate(tc.in, tc.n); got != tc.want {
				t.Fatalf("truncate(%q, %d)=%q, want %q", tc.in, tc.n, got, tc.want)
			}
		})
	}
}
