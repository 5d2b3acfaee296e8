package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"voicedraft-be/internal/config"
	"voicedraft-be/internal/constant"
	"voicedraft-be/pkg/dictation/classify"
	"voicedraft-be/pkg/dictation/mutate"
	"voicedraft-be/pkg/dictation/tone"
	"voicedraft-be/pkg/llm/factory"

	"github.com/fatih/color"
)

// Standalone console dictation: type utterances, watch the document evolve.
// No database, no server; everything lives in this process.
func main() {
	toneFlag := flag.String("tone", tone.DefaultID, "tone of voice ("+strings.Join(tone.IDs(), ", ")+")")
	flag.Parse()

	cfg := config.Load()

	provider, err := factory.NewProvider(
		cfg.Ai.Provider,
		cfg.Ai.Model,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
		cfg.Ai.RequestTimeout,
	)
	if err != nil {
		log.Fatalf("Failed to initialize LLM provider: %v", err)
	}

	classifier := classify.NewClassifier(provider)
	mutator := mutate.NewMutator(provider)
	t := tone.Resolve(*toneFlag)

	heading := color.New(color.FgCyan, color.Bold)
	commandColor := color.New(color.FgYellow)
	speechColor := color.New(color.FgGreen)
	errorColor := color.New(color.FgRed)

	heading.Printf("Dictating with %s (%s), tone: %s. Say 'exit' to stop.\n", cfg.Ai.Provider, cfg.Ai.Model, t.ID)

	document := ""
	scanner := bufio.NewScanner(os.Stdin)
	ctx := context.Background()

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		utterance := strings.TrimSpace(scanner.Text())
		if utterance == "" {
			continue
		}
		if isExitWord(utterance) {
			heading.Println(constant.FarewellMessage)
			break
		}

		result := classifier.Classify(ctx, utterance)

		var updated string
		if result == classify.Command {
			commandColor.Println("[command]")
			updated, err = mutator.ApplyCommand(ctx, document, utterance, t)
		} else {
			speechColor.Println("[speech]")
			updated, err = mutator.AppendSpeech(ctx, document, utterance, t)
		}
		if err != nil {
			errorColor.Printf("%s (%v)\n", constant.SoftErrorMessage, err)
			continue
		}

		document = updated
		fmt.Println(document)
	}
}

func isExitWord(utterance string) bool {
	normalized := strings.ToLower(utterance)
	for _, word := range constant.ExitWords {
		if normalized == word {
			return true
		}
	}
	return false
}
