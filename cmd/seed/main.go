package main

import (
	"context"
	"fmt"
	"os"

	"github.com/learnai/learnai-backend/internal/app"
	"github.com/learnai/learnai-backend/internal/services"
	"github.com/learnai/learnai-backend/internal/types"
)

// Seeds the catalog with a small set of PDF courses plus lessons and
// quizzes, enough to exercise enrollment, reading and recommendations
// in a fresh environment. Safe to re-run: existing titles are skipped.
func main() {
	application, err := app.New()
	if err != nil {
		fmt.Printf("Failed to init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	ctx := context.Background()
	log := application.Log.With("cmd", "seed")

	existing, err := application.Repos.Course.List(ctx, nil)
	if err != nil {
		log.Error("List courses failed", "error", err)
		os.Exit(1)
	}
	have := make(map[string]bool, len(existing))
	for _, c := range existing {
		have[c.Title] = true
	}

	created := 0
	for _, seed := range seedCourses() {
		if have[seed.course.Title] {
			continue
		}
		if _, err := application.Repos.Course.Create(ctx, nil, []*types.Course{seed.course}); err != nil {
			log.Error("Create course failed", "title", seed.course.Title, "error", err)
			os.Exit(1)
		}
		for i := range seed.lessons {
			seed.lessons[i].CourseID = seed.course.ID
		}
		if len(seed.lessons) > 0 {
			if _, err := application.Repos.Lesson.Create(ctx, nil, seed.lessons); err != nil {
				log.Error("Create lessons failed", "title", seed.course.Title, "error", err)
				os.Exit(1)
			}
		}
		for li, quizzes := range seed.quizzes {
			for i := range quizzes {
				quizzes[i].LessonID = seed.lessons[li].ID
			}
			if _, err := application.Repos.Quiz.Create(ctx, nil, quizzes); err != nil {
				log.Error("Create quizzes failed", "title", seed.course.Title, "error", err)
				os.Exit(1)
			}
		}
		created++
	}

	log.Info("Seed complete", "created", created, "skipped", len(seedCourses())-created)
}

type courseSeed struct {
	course  *types.Course
	lessons []*types.Lesson
	quizzes map[int][]*types.Quiz
}

func seedCourses() []courseSeed {
	return []courseSeed{
		{
			course: &types.Course{
				Title:         "Modern Web Development Fundamentals",
				Description:   "HTML, CSS and JavaScript from first principles through building and deploying a working site.",
				Category:      types.CategoryWebDevelopment,
				Level:         types.SkillBeginner,
				DurationHours: 20,
				LessonsCount:  3,
				Rating:        4.6,
				EnrolledCount: 1250,
				Topics:        services.EncodeInterests([]string{"html", "css", "javascript", "web"}),
				ContentTypes:  services.EncodeInterests([]string{types.ContentVideo, types.ContentText, types.ContentQuiz}),
				PDFURL:        "/media/courses/web-fundamentals.pdf",
				TotalPages:    142,
				ChatSummary:   "Covers the building blocks of the web. HTML structures content. CSS styles and lays out pages. JavaScript adds interactivity and talks to servers over HTTP.",
			},
			lessons: []*types.Lesson{
				{Title: "Structuring Pages with HTML", ContentType: types.ContentText, Order: 1},
				{Title: "Styling with CSS", ContentType: types.ContentVideo, Order: 2, VideoDuration: 840},
				{Title: "JavaScript Essentials", ContentType: types.ContentInteractive, Order: 3},
			},
			quizzes: map[int][]*types.Quiz{
				0: {{
					Question:      "Which element defines the main heading of a document?",
					Options:       services.EncodeInterests([]string{"<header>", "<h1>", "<title>", "<main>"}),
					CorrectAnswer: 1,
					Explanation:   "<h1> is the top-level heading element; <title> names the document, not its visible heading.",
				}},
			},
		},
		{
			course: &types.Course{
				Title:         "Data Science with Python",
				Description:   "Pandas, visualization and statistics for practical data analysis.",
				Category:      types.CategoryDataScience,
				Level:         types.SkillIntermediate,
				DurationHours: 28,
				LessonsCount:  3,
				Rating:        4.8,
				EnrolledCount: 1980,
				Topics:        services.EncodeInterests([]string{"python", "pandas", "statistics", "data"}),
				ContentTypes:  services.EncodeInterests([]string{types.ContentVideo, types.ContentQuiz}),
				PDFURL:        "/media/courses/data-science-python.pdf",
				TotalPages:    218,
				ChatSummary:   "Introduces the data analysis workflow. Loading data with pandas. Cleaning and transforming tables. Exploring distributions with plots. Drawing conclusions with basic statistics.",
			},
			lessons: []*types.Lesson{
				{Title: "Loading and Inspecting Data", ContentType: types.ContentVideo, Order: 1, VideoDuration: 720},
				{Title: "Cleaning and Transforming", ContentType: types.ContentText, Order: 2},
				{Title: "Exploratory Analysis", ContentType: types.ContentQuiz, Order: 3},
			},
			quizzes: map[int][]*types.Quiz{
				2: {{
					Question:      "Which pandas method returns the first rows of a DataFrame?",
					Options:       services.EncodeInterests([]string{"df.first()", "df.top()", "df.head()", "df.rows()"}),
					CorrectAnswer: 2,
					Explanation:   "df.head() returns the first n rows, five by default.",
				}},
			},
		},
		{
			course: &types.Course{
				Title:         "Machine Learning Foundations",
				Description:   "Supervised learning, model evaluation and the scikit-learn workflow.",
				Category:      types.CategoryMachineLearning,
				Level:         types.SkillIntermediate,
				DurationHours: 32,
				LessonsCount:  2,
				Rating:        4.7,
				EnrolledCount: 1640,
				Topics:        services.EncodeInterests([]string{"machine learning", "python", "models", "scikit-learn"}),
				ContentTypes:  services.EncodeInterests([]string{types.ContentVideo, types.ContentInteractive}),
				PDFURL:        "/media/courses/ml-foundations.pdf",
				TotalPages:    186,
				ChatSummary:   "Explains how models learn from labeled data. Splitting data into train and test sets. Fitting classifiers and regressors. Measuring accuracy, precision and recall.",
			},
			lessons: []*types.Lesson{
				{Title: "The Supervised Learning Loop", ContentType: types.ContentVideo, Order: 1, VideoDuration: 960},
				{Title: "Evaluating Models", ContentType: types.ContentInteractive, Order: 2},
			},
			quizzes: map[int][]*types.Quiz{},
		},
		{
			course: &types.Course{
				Title:         "Cloud Computing Essentials",
				Description:   "Core cloud concepts: compute, storage, networking and deployment models.",
				Category:      types.CategoryCloudComputing,
				Level:         types.SkillBeginner,
				DurationHours: 16,
				LessonsCount:  2,
				Rating:        4.4,
				EnrolledCount: 890,
				Topics:        services.EncodeInterests([]string{"cloud", "aws", "infrastructure", "devops"}),
				ContentTypes:  services.EncodeInterests([]string{types.ContentText, types.ContentQuiz}),
				PDFURL:        "/media/courses/cloud-essentials.pdf",
				TotalPages:    120,
				ChatSummary:   "Describes cloud service models. IaaS rents raw infrastructure. PaaS manages the runtime for you. SaaS delivers finished applications. Regions and availability zones provide redundancy.",
			},
			lessons: []*types.Lesson{
				{Title: "Service and Deployment Models", ContentType: types.ContentText, Order: 1},
				{Title: "Regions, Zones and Redundancy", ContentType: types.ContentText, Order: 2},
			},
			quizzes: map[int][]*types.Quiz{
				0: {{
					Question:      "Which model delivers finished applications over the network?",
					Options:       services.EncodeInterests([]string{"IaaS", "PaaS", "SaaS", "FaaS"}),
					CorrectAnswer: 2,
					Explanation:   "SaaS delivers complete applications; IaaS and PaaS deliver infrastructure and platforms.",
				}},
			},
		},
	}
}
