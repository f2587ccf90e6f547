// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package quiz

import (
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"

	"github.com/tomtom215/newsprep/internal/database"
)

// sourceLength bounds the text the questions are drawn from.
const sourceLength = 500

var (
	numberPattern = regexp.MustCompile(`\b\d+\b`)
	namePattern   = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`)
	placePattern  = regexp.MustCompile(`\b(?:New York|Washington|London|Delhi|Mumbai|Chennai|Bangalore|Pakistan|India|China|USA|UK)\b`)
	orgPattern    = regexp.MustCompile(`\b(?:government|ministry|company|organization|team|group)\b`)
)

var placeDistractors = []string{"Mumbai", "Delhi", "London", "Beijing"}

// Generate builds three multiple-choice questions from the opening of text.
// Options are shuffled with a seed derived from articleID, so the same
// article always yields the same quiz, and Answer holds the letter of the
// correct option.
func Generate(articleID int64, text string) []database.Question {
	text = database.TruncateRunes(strings.TrimSpace(text), sourceLength)
	words := strings.Fields(text)

	var sentences []string
	for _, s := range strings.Split(text, ".") {
		if s = strings.TrimSpace(s); s != "" {
			sentences = append(sentences, s)
		}
	}

	var keyPhrases []string
	for _, s := range sentences[:min(3, len(sentences))] {
		if w := strings.Fields(s); len(w) >= 2 {
			keyPhrases = append(keyPhrases, strings.Join(w[:min(5, len(w))], " "))
		}
	}

	rng := rand.New(rand.NewPCG(uint64(articleID), 0x9e3779b97f4a7c15)) //nolint:gosec // deterministic shuffle, not security sensitive
	return []database.Question{
		factQuestion(rng, text, words),
		contextQuestion(rng, text, keyPhrases),
		comprehensionQuestion(rng, sentences, words),
	}
}

func factQuestion(rng *rand.Rand, text string, words []string) database.Question {
	if num := numberPattern.FindString(text); num != "" {
		alt := "25"
		if n, err := strconv.Atoi(num); err == nil && n < 1<<30 {
			alt = strconv.Itoa(n + 10)
		}
		return build(rng, "According to the article, what number is mentioned?", num, alt, "100", "50")
	}
	if name := namePattern.FindString(text); name != "" {
		return build(rng, "Who is mentioned in this article?", name, "Narendra Modi", "Joe Biden", "Xi Jinping")
	}
	opening := strings.Join(words[:min(3, len(words))], " ")
	return build(rng, "The article begins with:", opening, "In recent news", "According to sources", "It was reported")
}

func contextQuestion(rng *rand.Rand, text string, keyPhrases []string) database.Question {
	if place := placePattern.FindString(text); place != "" {
		var others []string
		for _, p := range placeDistractors {
			if p != place && len(others) < 3 {
				others = append(others, p)
			}
		}
		return build(rng, "Which location is mentioned in the article?", place, others...)
	}
	if org := orgPattern.FindString(strings.ToLower(text)); org != "" {
		return build(rng, "The article discusses a:", strings.ToUpper(org[:1])+org[1:], "University", "Hospital", "School")
	}
	topic := "Current events"
	if len(keyPhrases) > 0 {
		topic = keyPhrases[0]
	}
	return build(rng, "This article is about:", topic, "Historical facts", "Future predictions", "Personal stories")
}

func comprehensionQuestion(rng *rand.Rand, sentences, words []string) database.Question {
	if len(sentences) >= 2 {
		w := strings.Fields(sentences[1])
		phrase := strings.Join(w[:min(6, len(w))], " ")
		return build(rng, "According to the article, what happened?", phrase, "Nothing significant", "A major disaster", "A celebration")
	}
	subject := "News"
	if len(words) > 0 {
		subject = words[0]
	}
	return build(rng, "The main subject of this article is:", subject, "Sports", "Weather", "Entertainment")
}

// build shuffles correct among the distractors, dropping distractors that
// repeat an earlier option.
func build(rng *rand.Rand, question, correct string, distractors ...string) database.Question {
	options := []string{correct}
	seen := map[string]struct{}{strings.ToLower(correct): {}}
	for _, d := range distractors {
		key := strings.ToLower(d)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		options = append(options, d)
	}

	rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })
	answer := 0
	for i, o := range options {
		if o == correct {
			answer = i
			break
		}
	}
	return database.Question{Question: question, Options: options, Answer: Letter(answer)}
}

// Letter returns the option letter for index i (0 is "A").
func Letter(i int) string {
	return string(rune('A' + i))
}
