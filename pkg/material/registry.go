package material

import (
	"fmt"
	"slices"
	"sync"

	"github.com/goliatone/go-material-widgets/pkg/forms"
)

// Converter builds the styled counterpart of a default widget. It must copy
// attrs and choices so the result shares no state with src.
type Converter func(src forms.Widget) (Styled, error)

// Registry maps default widget kinds to converters. It is safe for
// concurrent use; registering a kind again replaces the earlier converter.
type Registry struct {
	mu         sync.RWMutex
	converters map[forms.Kind]Converter
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{converters: map[forms.Kind]Converter{}}
}

// DefaultRegistry returns a registry covering every default widget kind.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	for _, kind := range []forms.Kind{
		forms.KindTextInput, forms.KindNumberInput, forms.KindEmailInput,
		forms.KindURLInput, forms.KindPasswordInput, forms.KindDateInput,
		forms.KindDateTimeInput, forms.KindTimeInput, forms.KindTextarea,
	} {
		reg.Register(kind, convertTextField)
	}
	reg.Register(forms.KindHiddenInput, convertHidden)
	reg.Register(forms.KindMultipleHiddenInput, convertHidden)
	reg.Register(forms.KindFileInput, convertFile)
	reg.Register(forms.KindClearableFileInput, convertFile)
	reg.Register(forms.KindCheckboxInput, convertCheckbox)
	reg.Register(forms.KindSelect, convertSelect)
	reg.Register(forms.KindNullBooleanSelect, convertSelect)
	reg.Register(forms.KindSelectMultiple, convertSelect)
	reg.Register(forms.KindRadioSelect, convertChoiceGroup)
	reg.Register(forms.KindCheckboxSelectMultiple, convertChoiceGroup)
	reg.Register(forms.KindSplitDateTimeWidget, convertSplitDateTime)
	reg.Register(forms.KindSplitHiddenDateTimeWidget, convertSplitDateTime)
	reg.Register(forms.KindSelectDateWidget, convertSelectDate)
	reg.Register(forms.KindMultiWidget, func(src forms.Widget) (Styled, error) {
		multi, ok := src.(*forms.MultiWidget)
		if !ok {
			return nil, unexpected(src, "*forms.MultiWidget")
		}
		styled, err := multiWidgetFrom(multi, reg.Convert)
		if err != nil {
			return nil, err
		}
		return styled, nil
	})
	return reg
}

// Register installs conv for kind. A nil converter is a programming error and
// panics.
func (r *Registry) Register(kind forms.Kind, conv Converter) {
	if conv == nil {
		panic(fmt.Sprintf("material: nil converter for %s", kind))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.converters == nil {
		r.converters = map[forms.Kind]Converter{}
	}
	r.converters[kind] = conv
}

// Lookup returns the converter registered for kind.
func (r *Registry) Lookup(kind forms.Kind) (Converter, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	conv, ok := r.converters[kind]
	return conv, ok
}

// Kinds lists the registered kinds, sorted.
func (r *Registry) Kinds() []forms.Kind {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	out := make([]forms.Kind, 0, len(r.converters))
	for kind := range r.converters {
		out = append(out, kind)
	}
	r.mu.RUnlock()
	slices.Sort(out)
	return out
}

// Convert styles w. Already styled widgets are returned as they are.
func (r *Registry) Convert(w forms.Widget) (Styled, error) {
	if styled, ok := w.(Styled); ok {
		return styled, nil
	}
	if w == nil {
		return nil, fmt.Errorf("%w: widget is nil", ErrNoStyledWidget)
	}
	conv, ok := r.Lookup(w.Kind())
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoStyledWidget, w.Kind())
	}
	return conv(w)
}

func unexpected(src forms.Widget, want string) error {
	return fmt.Errorf("material: %s widget is %T, want %s", src.Kind(), src, want)
}

func convertTextField(src forms.Widget) (Styled, error) {
	input, ok := src.(*forms.Input)
	if !ok {
		return nil, unexpected(src, "*forms.Input")
	}
	styled, err := newTextField(input)
	if err != nil {
		return nil, err
	}
	return styled, nil
}

func convertHidden(src forms.Widget) (Styled, error) {
	input, ok := src.(*forms.Input)
	if !ok {
		return nil, unexpected(src, "*forms.Input")
	}
	return &Hidden{Input: input.Copy()}, nil
}

func convertFile(src forms.Widget) (Styled, error) {
	input, ok := src.(*forms.Input)
	if !ok {
		return nil, unexpected(src, "*forms.Input")
	}
	return &FileButton{Input: input.Copy()}, nil
}

func convertCheckbox(src forms.Widget) (Styled, error) {
	checkbox, ok := src.(*forms.CheckboxInput)
	if !ok {
		return nil, unexpected(src, "*forms.CheckboxInput")
	}
	return &Checkbox{CheckboxInput: checkbox.Copy()}, nil
}

func convertSelect(src forms.Widget) (Styled, error) {
	choice, ok := src.(*forms.ChoiceWidget)
	if !ok {
		return nil, unexpected(src, "*forms.ChoiceWidget")
	}
	return &Select{ChoiceWidget: choice.Copy()}, nil
}

func convertChoiceGroup(src forms.Widget) (Styled, error) {
	choice, ok := src.(*forms.ChoiceWidget)
	if !ok {
		return nil, unexpected(src, "*forms.ChoiceWidget")
	}
	return &ChoiceGroup{
		ChoiceWidget: choice.Copy(),
		IsVertical:   choice.Kind() == forms.KindCheckboxSelectMultiple,
	}, nil
}

func convertSplitDateTime(src forms.Widget) (Styled, error) {
	multi, ok := src.(*forms.MultiWidget)
	if !ok {
		return nil, unexpected(src, "*forms.MultiWidget")
	}
	return splitDateTimeFrom(multi), nil
}

func convertSelectDate(src forms.Widget) (Styled, error) {
	date, ok := src.(*forms.SelectDateWidget)
	if !ok {
		return nil, unexpected(src, "*forms.SelectDateWidget")
	}
	return selectDateFrom(date), nil
}
