package registry

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuestionRegistry() *IdentityRegistry {
	return NewIdentity(BaseFor[Question](), WithName("questions"), WithDiscoveryModule("questions"))
}

func TestIdentityRegistry_RegisterReturnsTypeUnchanged(t *testing.T) {
	reg := newQuestionRegistry()

	got, err := reg.Register(booleanType)
	require.NoError(t, err)
	assert.Equal(t, booleanType, got)
	assert.True(t, reg.IsRegistered(booleanType))
	assert.Equal(t, 1, reg.Len())
}

func TestIdentityRegistry_RegisterTwiceFails(t *testing.T) {
	reg := newQuestionRegistry()
	_, err := reg.Register(booleanType)
	require.NoError(t, err)

	_, err = reg.Register(booleanType)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
	assert.Equal(t, 1, reg.Len())
}

func TestIdentityRegistry_RejectsNonSubtypes(t *testing.T) {
	reg := newQuestionRegistry()
	_, err := reg.Register(freeTextType)
	require.NoError(t, err)

	for _, typ := range []reflect.Type{notAQuestionType, reflect.TypeFor[MultipleChoiceQuestion](), nil} {
		t.Run(TypePath(typ), func(t *testing.T) {
			_, err := reg.Register(typ)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidOperation)
			assert.Equal(t, TypeSet{freeTextType: {}}, reg.All(), "a rejected registration must leave the registry unchanged")
		})
	}
}

func TestIdentityRegistry_ErrorNamesRegistryAndType(t *testing.T) {
	reg := newQuestionRegistry()

	_, err := reg.Register(notAQuestionType)

	var regErr *Error
	require.ErrorAs(t, err, &regErr)
	assert.Equal(t, "register", regErr.Op)
	assert.Equal(t, "questions", regErr.Registry)
	assert.Equal(t, TypePath(notAQuestionType), regErr.Key)
	assert.Contains(t, err.Error(), "not a subtype of "+TypePath(questionType))
}

func TestIdentityRegistry_UnregisterRoundTrip(t *testing.T) {
	reg := newQuestionRegistry()

	_, err := reg.Register(multipleChoiceType)
	require.NoError(t, err)
	assert.True(t, reg.All().Contains(multipleChoiceType))

	require.NoError(t, reg.Unregister(multipleChoiceType))
	assert.False(t, reg.All().Contains(multipleChoiceType))

	_, err = reg.Register(multipleChoiceType)
	require.NoError(t, err)
	assert.True(t, reg.All().Contains(multipleChoiceType))
}

func TestIdentityRegistry_UnregisterAbsentFails(t *testing.T) {
	reg := newQuestionRegistry()
	_, err := reg.Register(booleanType)
	require.NoError(t, err)

	err = reg.Unregister(freeTextType)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, TypeSet{booleanType: {}}, reg.All())
}

func TestIdentityRegistry_DoesNotContainBase(t *testing.T) {
	reg := newQuestionRegistry()

	assert.True(t, reg.IsValid(booleanType), "validation resolves the base")
	assert.Empty(t, reg.All())
	assert.False(t, reg.IsRegistered(questionType))

	_, err := reg.Register(booleanType)
	require.NoError(t, err)
	assert.Equal(t, TypeSet{booleanType: {}}, reg.All())
}

func TestIdentityRegistry_AllAndClear(t *testing.T) {
	reg := newQuestionRegistry()
	reg.MustRegister(booleanType)
	reg.MustRegister(multipleChoiceType)

	assert.Len(t, reg.All(), 2)

	reg.Clear()
	assert.Len(t, reg.All(), 0)
	assert.Equal(t, 0, reg.Len())
}

func TestIdentityRegistry_AllIsLive(t *testing.T) {
	reg := newQuestionRegistry()
	reg.MustRegister(booleanType)

	view := reg.All()
	delete(view, booleanType)
	assert.False(t, reg.IsRegistered(booleanType), "All shares the backing set")

	reg.MustRegister(freeTextType)
	assert.True(t, view.Contains(freeTextType))

	reg.Clear()
	reg.MustRegister(booleanType)
	assert.False(t, view.Contains(booleanType), "a view taken before Clear is detached")
}

func TestIdentityRegistry_IsValidNeverFails(t *testing.T) {
	reg := NewIdentity(BasePath("quiz.Missing", NewTypeIndex()))

	assert.False(t, reg.IsValid(booleanType))
	assert.False(t, newQuestionRegistry().IsValid(nil))
	assert.True(t, newQuestionRegistry().IsValid(booleanType))
}

func TestIdentityRegistry_SortedAndTypes(t *testing.T) {
	reg := newQuestionRegistry()
	reg.MustRegister(multipleChoiceType)
	reg.MustRegister(freeTextType)
	reg.MustRegister(booleanType)

	sorted := reg.Sorted()
	require.Len(t, sorted, 3)
	for i := 1; i < len(sorted); i++ {
		assert.Less(t, TypePath(sorted[i-1]), TypePath(sorted[i]))
	}

	seen := TypeSet{}
	for typ := range reg.Types() {
		seen[typ] = struct{}{}
	}
	assert.Equal(t, reg.All(), seen)
}

func TestIdentityRegistry_MustRegisterPanics(t *testing.T) {
	reg := newQuestionRegistry()

	assert.Equal(t, booleanType, reg.MustRegister(booleanType))
	assert.Panics(t, func() { reg.MustRegister(booleanType) })
	assert.Panics(t, func() { reg.MustRegister(notAQuestionType) })
}

func TestRegisterType(t *testing.T) {
	reg := newQuestionRegistry()

	got, err := RegisterType[FreeTextQuestion](reg)
	require.NoError(t, err)
	assert.Equal(t, freeTextType, got)

	_, err = RegisterType[NotAQuestion](reg)
	assert.ErrorIs(t, err, ErrInvalidOperation)
}

func TestIdentityRegistry_ConcreteBase(t *testing.T) {
	reg := NewIdentity(BaseFor[Model]())

	_, err := RegisterType[Poll](reg)
	require.NoError(t, err)
	_, err = RegisterType[*Survey](reg)
	require.NoError(t, err)

	_, err = RegisterType[Unrelated](reg)
	assert.ErrorIs(t, err, ErrInvalidOperation)
	assert.Equal(t, 2, reg.Len())
}

func TestIdentityRegistry_DeferredBaseBehavesLikeConcrete(t *testing.T) {
	index := NewTypeIndex()
	deferred := NewIdentity(BasePath("quiz.Question", index))
	direct := newQuestionRegistry()

	_, err := deferred.Register(booleanType)
	require.Error(t, err, "the base is not available yet")
	assert.ErrorIs(t, err, ErrImproperlyConfigured)
	assert.Empty(t, deferred.All())

	_, err = index.Publish(questionType, "quiz.Question")
	require.NoError(t, err)

	for _, typ := range []reflect.Type{booleanType, multipleChoiceType, notAQuestionType} {
		_, errDeferred := deferred.Register(typ)
		_, errDirect := direct.Register(typ)
		assert.Equal(t, errDirect == nil, errDeferred == nil, TypePath(typ))
	}
	assert.Equal(t, direct.All(), deferred.All())
}
