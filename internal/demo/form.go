// Package demo holds the forms and model schemas the demo command serves.
package demo

import (
	"strconv"
	"time"

	"github.com/goliatone/go-material-widgets/pkg/forms"
	"github.com/goliatone/go-material-widgets/pkg/material"
)

// Fields declares the widget showcase. Plain widgets are styled when the
// form is materialized; Material widgets carry options plain ones lack.
func Fields(now time.Time) ([]*forms.Field, error) {
	password := material.NewPasswordInput(nil)
	password.PersistentHelpText = true

	slider := material.NewSliderInput(forms.Attrs{"step": "0.25"})

	discrete := material.NewSliderInput(forms.Attrs{"step": "2"})
	discrete.IsDiscrete = true
	discrete.DisplayMarkers = true

	years := make([]int, 0, 100)
	for year := now.Year(); year > now.Year()-100; year-- {
		years = append(years, year)
	}
	dateSelect := forms.NewSelectDateWidget(nil, years)
	dateSelect.EmptyLabels = [3]string{"Year", "Month", "Day"}

	checkboxes := material.NewCheckboxSelectMultiple(nil, nil)
	checkboxes.IsVertical = true

	attachment := material.NewFileInput(nil)
	if err := attachment.SetButton("compact", "dense", "raised"); err != nil {
		return nil, err
	}
	attachment.Icon = "attachment"

	uploads := material.NewClearableFileInput(forms.Attrs{"multiple": true})
	uploads.Icon = "file_upload"

	return []*forms.Field{
		forms.NewField("username", forms.TypeChar,
			forms.WithMinLength(3),
			forms.WithMaxLength(32),
			forms.WithHelpText("3-32 characters required"),
			forms.WithWidget(forms.NewTextInput(forms.Attrs{"autofocus": "autofocus"})),
		),
		forms.NewField("email", forms.TypeEmail, forms.WithRequired(false)),
		forms.NewField("password", forms.TypePassword,
			forms.WithHelpText("Please enter at least 8 characters"),
			forms.WithRequired(false),
			forms.WithMinLength(8),
			forms.WithWidget(password),
		),
		forms.NewField("url", forms.TypeURL,
			forms.WithLabel("URL"),
			forms.WithRequired(false),
			forms.WithInitial("http://github.com/ooknosi"),
		),
		forms.NewField("textarea", forms.TypeText,
			forms.WithHelpText("Write as much as you want"),
			forms.WithRequired(false),
		),
		forms.NewField("number", forms.TypeInteger,
			forms.WithLabel("Odd Number"),
			forms.WithHelpText("No even numbers!"),
			forms.WithRequired(false),
			forms.WithMinValue(1),
			forms.WithMaxValue(9),
			forms.WithWidget(forms.NewNumberInput(forms.Attrs{"step": "2"})),
		),
		forms.NewField("slider", forms.TypeDecimal,
			forms.WithLabel("Slider (2 decimal places)"),
			forms.WithHelpText("in steps of 0.25"),
			forms.WithRequired(false),
			forms.WithMinValue(0),
			forms.WithMaxValue(10),
			forms.WithDecimal(4, 2),
			forms.WithWidget(slider),
		),
		forms.NewField("slider_discrete", forms.TypeInteger,
			forms.WithLabel("Slider (Even Number with Markers)"),
			forms.WithRequired(false),
			forms.WithMinValue(0),
			forms.WithMaxValue(10),
			forms.WithInitial(6),
			forms.WithWidget(discrete),
		),
		forms.NewField("date_field", forms.TypeDate, forms.WithHelpText("YYYY-MM-DD"), forms.WithRequired(false)),
		forms.NewField("time_field", forms.TypeTime, forms.WithHelpText("HH:MM:SS"), forms.WithRequired(false)),
		forms.NewField("datetime_field", forms.TypeDateTime, forms.WithHelpText("YYYY-MM-DD HH:MM:SS"), forms.WithRequired(false)),
		forms.NewField("split_datetime", forms.TypeSplitDateTime, forms.WithRequired(false)),
		forms.NewField("date_select", forms.TypeDate,
			forms.WithHelpText("This is a select date"),
			forms.WithRequired(false),
			forms.WithWidget(dateSelect),
		),
		// A blank label lets the first option act as the label.
		forms.NewField("select", forms.TypeChoice,
			forms.WithNoLabel(),
			forms.WithRequired(false),
			forms.WithChoices(
				forms.Choice{Value: "", Label: "Select"},
				forms.Choice{Value: "choice_1", Label: "Choice 1"},
				forms.Choice{Value: "choice_2", Label: "Choice 2"},
				forms.Choice{Value: "choice_3", Label: "Choice 3"},
			),
		),
		forms.NewField("select_with_groups", forms.TypeChoice,
			forms.WithNoLabel(),
			forms.WithRequired(false),
			forms.WithChoices(
				forms.Choice{Value: "", Label: "Select with Groups"},
				group("Group 1", "group_1_choice_", "Group 1 Choice ", 1, 3),
				group("Group 2", "group_2_choice_", "Group 2 Choice ", 4, 6),
			),
		),
		forms.NewField("null_boolean_select", forms.TypeNullBoolean,
			forms.WithHelpText("This is a null boolean select"),
			forms.WithRequired(false),
		),
		forms.NewField("select_multiple", forms.TypeMultipleChoice,
			forms.WithNoLabel(),
			forms.WithRequired(false),
			forms.WithChoices(
				group("Select Multiple 1", "multiple_choice_", "Multiple Choice ", 1, 3),
				group("Select Multiple 2", "multiple_choice_", "Multiple Choice ", 4, 6),
			),
		),
		forms.NewField("boolean_switch", forms.TypeBoolean,
			forms.WithLabel("Boolean Switch"),
			forms.WithHelpText("This is a switch"),
			forms.WithRequired(false),
			forms.WithWidget(material.NewSwitchInput(nil)),
		),
		forms.NewField("radio_select", forms.TypeChoice,
			forms.WithLabel("Radio Select"),
			forms.WithChoiceHelpText("This is radio 1", "This is radio 2", "This is radio 3"),
			forms.WithRequired(false),
			forms.WithWidget(forms.NewRadioSelect(nil, nil)),
			forms.WithChoices(
				forms.Choice{Value: "radio_select_1", Label: "Radio 1"},
				forms.Choice{Value: "radio_select_2", Label: "Radio 2"},
				forms.Choice{Value: "radio_select_3", Label: "Radio 3"},
			),
		),
		forms.NewField("checkbox", forms.TypeBoolean,
			forms.WithLabel("Checkbox"),
			forms.WithHelpText("This is a checkbox"),
			forms.WithRequired(false),
		),
		forms.NewField("checkbox_select_multiple", forms.TypeMultipleChoice,
			forms.WithLabel("Multiple Checkboxes"),
			forms.WithChoiceHelpText("This is checkbox 1", "This is checkbox 2", "This is checkbox 3"),
			forms.WithRequired(false),
			forms.WithWidget(checkboxes),
			forms.WithChoices(
				forms.Choice{Value: "checkbox_1", Label: "Checkbox 1"},
				forms.Choice{Value: "checkbox_2", Label: "Checkbox 2"},
				forms.Choice{Value: "checkbox_3", Label: "Checkbox 3"},
			),
		),
		// Without a label only the icon shows.
		forms.NewField("file_input", forms.TypeFile,
			forms.WithNoLabel(),
			forms.WithHelpText("Choose 1 file"),
			forms.WithRequired(false),
			forms.WithWidget(attachment),
		),
		forms.NewField("clearable_file_input", forms.TypeFile,
			forms.WithLabel("Select Files"),
			forms.WithHelpText("Choose 1 or more files"),
			forms.WithRequired(false),
			forms.WithWidget(uploads),
		),
		forms.NewField("hidden_input", forms.TypeChar,
			forms.WithInitial("hidden_value"),
			forms.WithWidget(forms.NewHiddenInput(nil)),
		),
		forms.NewField("multiple_hidden_input", forms.TypeMultipleChoice,
			forms.WithInitial([]string{"hidden_1", "hidden_2", "hidden_3"}),
			forms.WithWidget(forms.NewMultipleHiddenInput(nil)),
			forms.WithChoices(
				forms.Choice{Value: "hidden_1", Label: "Hidden 1"},
				forms.Choice{Value: "hidden_2", Label: "Hidden 2"},
				forms.Choice{Value: "hidden_3", Label: "Hidden 3"},
			),
		),
		forms.NewField("split_hidden_datetime", forms.TypeSplitDateTime,
			forms.WithInitial(time.Date(1965, 8, 9, 12, 0, 0, 0, time.UTC)),
			forms.WithWidget(forms.NewSplitHiddenDateTimeWidget(nil)),
		),
	}, nil
}

// NewForm returns the materialized widget showcase.
func NewForm(opts ...material.Option) (*forms.Form, error) {
	fields, err := Fields(time.Now())
	if err != nil {
		return nil, err
	}
	return material.NewForm(fields, opts...)
}

func group(label, valuePrefix, labelPrefix string, from, to int) forms.Choice {
	out := forms.Choice{Label: label}
	for idx := from; idx <= to; idx++ {
		n := strconv.Itoa(idx)
		out.Group = append(out.Group, forms.Choice{Value: valuePrefix + n, Label: labelPrefix + n})
	}
	return out
}
