// Package quiz is a sample component compiled into the appregister binary.
// Importing it installs the "quiz" component into discovery.DefaultCatalog
// with a registrations submodule that fills Questions and Kinds.
package quiz

import (
	"github.com/specialistvlad/appregister/discovery"
	"github.com/specialistvlad/appregister/registry"
)

// Component is the catalog location of this package.
const Component = "quiz"

// Question is the contract quiz question types satisfy.
type Question interface {
	Prompt() string
}

// QuestionPath is the published path of Question.
var QuestionPath = registry.Publish[Question]("quiz.Question")

var (
	// Questions holds every question type. Its base is declared by path and
	// resolved on first use.
	Questions = registry.NewIdentity(
		registry.BasePath("quiz.Question", nil),
		registry.WithName("questions"),
	)

	// Kinds binds the kind names used in quiz definitions to question types.
	Kinds = registry.NewNamed(
		registry.BaseFor[Question](),
		registry.WithName("kinds"),
	)
)

func init() {
	discovery.DefaultCatalog.Install(Component)
	discovery.DefaultCatalog.MustProvide(Component, registry.DefaultDiscoveryModule, registerQuestions)
}
