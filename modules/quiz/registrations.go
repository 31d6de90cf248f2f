package quiz

import (
	"fmt"
	"reflect"

	"github.com/specialistvlad/appregister/registry"
)

// Boolean asks a yes or no question.
type Boolean struct {
	Text string
}

func (q Boolean) Prompt() string { return q.Text + " (yes/no)" }

// MultipleChoice asks the user to pick one of Choices.
type MultipleChoice struct {
	Text    string
	Choices []string
}

func (q *MultipleChoice) Prompt() string {
	return fmt.Sprintf("%s %v", q.Text, q.Choices)
}

// FreeText accepts any answer.
type FreeText struct {
	Text string
}

func (q FreeText) Prompt() string { return q.Text }

var kinds = []struct {
	name string
	typ  reflect.Type
}{
	{"boolean", reflect.TypeFor[Boolean]()},
	{"choice", reflect.TypeFor[*MultipleChoice]()},
	{"text", reflect.TypeFor[FreeText]()},
}

// registerQuestions is the registrations submodule of the quiz component.
func registerQuestions() error {
	for _, k := range kinds {
		if _, err := Questions.Register(k.typ); err != nil {
			return err
		}
		if _, err := Kinds.Register(k.name, k.typ); err != nil {
			return err
		}
		if _, err := registry.DefaultTypes.Publish(k.typ); err != nil {
			return err
		}
	}
	return nil
}

// New returns a zero question of the given kind.
func New(kind string) (Question, error) {
	t, err := Kinds.Lookup(kind)
	if err != nil {
		return nil, err
	}
	if t.Kind() == reflect.Pointer {
		return reflect.New(t.Elem()).Interface().(Question), nil
	}
	return reflect.New(t).Elem().Interface().(Question), nil
}
