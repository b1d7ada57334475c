// Package store persists model form submissions in SQLite.
//
// A Store creates one table per model schema plus a join table per
// many-to-many column, saves cleaned form data transactionally and lists
// related rows as form choices. It satisfies forms.Saver and
// forms.ChoiceSource.
package store
