package registry

import "reflect"

// Question is the contract the test registries are declared against.
type Question interface {
	Prompt() string
}

type BooleanQuestion struct{}

func (BooleanQuestion) Prompt() string { return "yes or no?" }

type MultipleChoiceQuestion struct{}

func (*MultipleChoiceQuestion) Prompt() string { return "pick one" }

type FreeTextQuestion struct{}

func (FreeTextQuestion) Prompt() string { return "say anything" }

type NotAQuestion struct{}

// Model is a concrete base; subtypes embed it.
type Model struct {
	ID int
}

type Poll struct {
	Model
	Title string
}

type Survey struct {
	*Poll
}

type Unrelated struct {
	ID int
}

var (
	questionType       = reflect.TypeFor[Question]()
	booleanType        = reflect.TypeFor[BooleanQuestion]()
	multipleChoiceType = reflect.TypeFor[*MultipleChoiceQuestion]()
	freeTextType       = reflect.TypeFor[FreeTextQuestion]()
	notAQuestionType   = reflect.TypeFor[NotAQuestion]()
)
