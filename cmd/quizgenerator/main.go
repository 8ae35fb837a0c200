package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"learnhub"
)

func main() {
	var (
		topic        = flag.String("topic", "", "Quiz topic (required)")
		numQuestions = flag.Int("questions", learnhub.DefaultNumQuestions, "Number of questions to generate")
		outputFile   = flag.String("output", "", "Output file for quiz JSON (default: stdout)")
		apiKey       = flag.String("api-key", "", "OpenAI API key (or set OPENAI_API_KEY env var)")
		playMode     = flag.Bool("play", false, "Play the quiz interactively and grade it")
		verbose      = flag.Bool("verbose", false, "Enable verbose debugging output")
	)

	flag.Parse()

	if *topic == "" {
		log.Fatal("Topic is required. Use -topic flag.")
	}

	cfg, err := learnhub.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *apiKey == "" {
		*apiKey = cfg.OpenAIAPIKey
		if *apiKey == "" {
			log.Fatal("OpenAI API key is required. Use -api-key flag or set OPENAI_API_KEY environment variable.")
		}
	}

	logger, err := learnhub.NewLogger(cfg.Mode, *verbose || cfg.Verbose)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	transcript, err := learnhub.NewLLMLogger(cfg.LLMLogDir, "quizgenerator-"+time.Now().Format("20060102-150405"))
	if err != nil {
		logger.Warn("Failed to create LLM transcript", "error", err)
	}
	defer transcript.Close()

	store := learnhub.NewMemoryStore(0)
	gen := learnhub.NewOpenAIGenerator(*apiKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
	quizzes, err := learnhub.NewQuizManager(gen, store, nil, transcript, logger)
	if err != nil {
		log.Fatalf("Failed to create quiz manager: %v", err)
	}

	logger.Debug("Starting quiz generation", "topic", *topic, "questions", *numQuestions)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if *playMode {
		fmt.Printf("🎯 Starting interactive quiz on: %s\n", *topic)
		fmt.Println("⏳ Generating questions... (this may take a moment)")
		fmt.Println()
	}

	quiz, err := quizzes.Generate(ctx, *topic, *numQuestions)
	if err != nil {
		log.Fatalf("Failed to generate quiz: %v", err)
	}

	if *playMode {
		playQuiz(ctx, quizzes, quiz)
		return
	}

	output, err := json.MarshalIndent(quiz, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal quiz: %v", err)
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, output, 0644); err != nil {
			log.Fatalf("Failed to write output file: %v", err)
		}
		log.Printf("Quiz saved to: %s", *outputFile)
	} else {
		fmt.Println(string(output))
	}

	logger.Debug("Quiz generation completed", "token", quiz.Token)
}

// playQuiz asks every question on stdin, then grades the answers through the
// same single-use token the web API uses.
func playQuiz(ctx context.Context, quizzes *learnhub.QuizManager, quiz *learnhub.GeneratedQuiz) {
	scanner := bufio.NewScanner(os.Stdin)
	letters := "ABCD"
	answers := make(map[string]string, len(quiz.Questions))

	for i, question := range quiz.Questions {
		fmt.Printf("Question %d/%d:\n", i+1, len(quiz.Questions))
		fmt.Printf("%s\n\n", question.Text)

		for j, option := range question.Options {
			fmt.Printf("%c) %s\n", letters[j], option)
		}
		fmt.Println()

		choice := -1
		for choice < 0 {
			fmt.Print("Your answer (A/B/C/D): ")
			if !scanner.Scan() {
				log.Fatal("Input closed before the quiz was finished")
			}
			answer := strings.ToUpper(strings.TrimSpace(scanner.Text()))
			if len(answer) == 1 {
				choice = strings.Index(letters[:len(question.Options)], answer)
			}
			if choice < 0 {
				fmt.Println("Please enter A, B, C, or D")
			}
		}

		answers[strconv.Itoa(question.ID)] = question.Options[choice]
		fmt.Println()
	}

	result, err := quizzes.Grade(ctx, quiz.Token, answers)
	if err != nil {
		log.Fatalf("Failed to grade quiz: %v", err)
	}

	fmt.Println("🎉 Quiz completed!")
	fmt.Println()
	for _, detail := range result.Details {
		if detail.IsCorrect {
			fmt.Printf("✅ Question %s: Correct!\n", detail.QuestionID)
		} else {
			fmt.Printf("❌ Question %s: Incorrect. The correct answer is %s\n", detail.QuestionID, detail.CorrectAnswer)
		}
	}

	fmt.Printf("\n🏆 Score: %d/%d (%d%%)\n", result.Correct, result.Total, result.Score)
	fmt.Println(result.Remark)
}
