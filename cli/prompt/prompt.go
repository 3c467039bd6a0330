// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package prompt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/manifoldco/promptui"

	"github.com/ava-labs/pdaledger/utils"
)

var (
	ErrInputEmpty      = errors.New("input is empty")
	ErrInputTooLarge   = errors.New("input is too large")
	ErrInvalidChoice   = errors.New("invalid choice")
	ErrIndexOutOfRange = errors.New("index out-of-range")
	ErrNegative        = errors.New("input is negative")
)

// String prompts for a non-empty string of at most [maxLen] bytes.
func String(label string, maxLen int) (string, error) {
	validate := func(input string) error {
		input = strings.TrimSpace(input)
		if len(input) == 0 {
			return ErrInputEmpty
		}
		if len(input) > maxLen {
			return ErrInputTooLarge
		}
		if !utf8.ValidString(input) {
			return ErrInvalidChoice
		}
		return nil
	}
	promptText := promptui.Prompt{
		Label:    label,
		Validate: validate,
	}
	text, err := promptText.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// Balance prompts for a non-negative integer.
func Balance(label string) (int64, error) {
	parse := func(input string) (int64, error) {
		input = strings.TrimSpace(input)
		if len(input) == 0 {
			return 0, ErrInputEmpty
		}
		amount, err := strconv.ParseInt(input, 10, 64)
		if err != nil {
			return 0, err
		}
		if amount < 0 {
			return 0, fmt.Errorf("%w: %d", ErrNegative, amount)
		}
		return amount, nil
	}
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			_, err := parse(input)
			return err
		},
	}
	rawAmount, err := promptText.Run()
	if err != nil {
		return 0, err
	}
	return parse(rawAmount)
}

func Choice(label string, maxChoice int) (int, error) {
	if maxChoice == 1 {
		utils.Outf("{{yellow}}%s:{{/}} 0 [auto-selected]\n", label)
		return 0, nil
	}
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			if len(input) == 0 {
				return ErrInputEmpty
			}
			index, err := strconv.Atoi(input)
			if err != nil {
				return err
			}
			if index >= maxChoice || index < 0 {
				return ErrIndexOutOfRange
			}
			return nil
		},
	}
	rawIndex, err := promptText.Run()
	if err != nil {
		return -1, err
	}
	return strconv.Atoi(rawIndex)
}

func Continue() (bool, error) {
	promptText := promptui.Prompt{
		Label: "continue (y/n)",
		Validate: func(input string) error {
			if len(input) == 0 {
				return ErrInputEmpty
			}
			lower := strings.ToLower(input)
			if lower == "y" || lower == "n" {
				return nil
			}
			return ErrInvalidChoice
		},
	}
	rawContinue, err := promptText.Run()
	if err != nil {
		return false, err
	}
	cont := strings.ToLower(rawContinue)
	if cont == "n" {
		utils.Outf("{{red}}exiting...{{/}}\n")
		return false, nil
	}
	return true, nil
}
