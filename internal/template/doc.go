// Package template renders generation artifacts by substituting {{TOKEN}}
// placeholders.
//
// A Table is derived once from a resolved spec and holds every token value
// for the run. Rendering is strict: any token appearing in a template that
// is missing from the table aborts with an error naming the token. It is
// also deterministic, so regenerating an unchanged project produces
// byte-identical files.
//
// Default artifact templates are embedded; a template directory on disk may
// override them file by file.
package template
