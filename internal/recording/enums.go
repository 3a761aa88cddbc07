package recording

import "fmt"

// Emotion is the acted emotion of a recording, encoded 1-8 in the filename
type Emotion int

const (
	Neutral Emotion = iota + 1
	Calm
	Happy
	Sad
	Angry
	Fearful
	Disgust
	Surprised
)

var emotionNames = map[Emotion]string{
	Neutral:   "Neutral",
	Calm:      "Calm",
	Happy:     "Happy",
	Sad:       "Sad",
	Angry:     "Angry",
	Fearful:   "Fearful",
	Disgust:   "Disgust",
	Surprised: "Surprised",
}

// ParseEmotion converts a filename code to an Emotion
func ParseEmotion(code int) (Emotion, error) {
	e := Emotion(code)
	if _, ok := emotionNames[e]; !ok {
		return 0, fmt.Errorf("emotion %d out of range 1-8", code)
	}
	return e, nil
}

func (e Emotion) String() string {
	if name, ok := emotionNames[e]; ok {
		return name
	}
	return fmt.Sprintf("Emotion(%d)", int(e))
}

// Intensity is how strongly the emotion was performed
type Intensity int

const (
	Normal Intensity = 1
	Strong Intensity = 2
)

// ParseIntensity converts a filename code to an Intensity
func ParseIntensity(code int) (Intensity, error) {
	switch Intensity(code) {
	case Normal, Strong:
		return Intensity(code), nil
	}
	return 0, fmt.Errorf("intensity %d out of range 1-2", code)
}

func (i Intensity) String() string {
	switch i {
	case Normal:
		return "Normal"
	case Strong:
		return "Strong"
	}
	return fmt.Sprintf("Intensity(%d)", int(i))
}

// Gender of the actor. Odd actor ids are male, even ids female.
type Gender int

const (
	Female Gender = 0
	Male   Gender = 1
)

// GenderForActor derives the gender from the actor id
func GenderForActor(actor int) Gender {
	if actor%2 != 0 {
		return Male
	}
	return Female
}

func (g Gender) String() string {
	if g == Male {
		return "Male"
	}
	return "Female"
}
