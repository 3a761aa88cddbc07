// Package recording decodes the RAVDESS filename convention into per-recording metadata.
//
// Filenames look like 03-01-05-02-02-01-12.wav:
//
//	modality-channel-emotion-intensity-statement-repetition-actor
//
// Every token is an integer. Only the emotion, intensity and statement tokens
// have a closed range; the rest are carried through as encoded.
package recording

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrMalformedFilename is returned (wrapped) for any filename that does not
// follow the 7-token convention or carries an out-of-range code.
var ErrMalformedFilename = errors.New("malformed filename")

// fieldCount is the number of dash-separated tokens in a recording stem
const fieldCount = 7

// Recording holds the metadata decoded from a single audio filename
type Recording struct {
	Stem    string // Filename without extension
	Channel string // Vocal channel label of the root the file was found under

	Modality    int // Token 1, not interpreted
	ChannelCode int // Token 2, not interpreted (the root label wins)
	Emotion     Emotion
	Intensity   Intensity
	Statement   int
	Repetition  int
	Actor       int
	Gender      Gender
}

// Decode parses a filename (with or without directory and extension) into a Recording.
// The Channel field is left empty; the caller tags it with the root's label.
func Decode(filename string) (Recording, error) {
	base := filepath.Base(filename)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	tokens := strings.Split(stem, "-")
	if len(tokens) != fieldCount {
		return Recording{}, fmt.Errorf("%w: %q has %d fields, want %d", ErrMalformedFilename, base, len(tokens), fieldCount)
	}

	var values [fieldCount]int
	for i, tok := range tokens {
		v, err := strconv.Atoi(tok)
		if err != nil {
			return Recording{}, fmt.Errorf("%w: %q field %d is not numeric: %q", ErrMalformedFilename, base, i+1, tok)
		}
		values[i] = v
	}

	emotion, err := ParseEmotion(values[2])
	if err != nil {
		return Recording{}, fmt.Errorf("%w: %q: %v", ErrMalformedFilename, base, err)
	}
	intensity, err := ParseIntensity(values[3])
	if err != nil {
		return Recording{}, fmt.Errorf("%w: %q: %v", ErrMalformedFilename, base, err)
	}
	// The corpus has no strong neutral performance
	if emotion == Neutral && intensity == Strong {
		return Recording{}, fmt.Errorf("%w: %q: neutral emotion cannot be strong", ErrMalformedFilename, base)
	}
	if _, err := StatementText(values[4]); err != nil {
		return Recording{}, fmt.Errorf("%w: %q: %v", ErrMalformedFilename, base, err)
	}

	return Recording{
		Stem:        stem,
		Modality:    values[0],
		ChannelCode: values[1],
		Emotion:     emotion,
		Intensity:   intensity,
		Statement:   values[4],
		Repetition:  values[5],
		Actor:       values[6],
		Gender:      GenderForActor(values[6]),
	}, nil
}

// Fields returns the seven integer tokens in filename order
func (r Recording) Fields() [fieldCount]int {
	return [fieldCount]int{
		r.Modality,
		r.ChannelCode,
		int(r.Emotion),
		int(r.Intensity),
		r.Statement,
		r.Repetition,
		r.Actor,
	}
}

// StatementText returns the sentence spoken in the recording
func (r Recording) StatementText() string {
	text, _ := StatementText(r.Statement)
	return text
}

// Statement sentences, indexed by statement id
const (
	Statement1 = "Kids are talking by the door"
	Statement2 = "Dogs are sitting by the door"
)

// StatementText maps a statement id to its sentence.
func StatementText(id int) (string, error) {
	switch id {
	case 1:
		return Statement1, nil
	case 2:
		return Statement2, nil
	default:
		return "", fmt.Errorf("statement %d out of range 1-2", id)
	}
}
