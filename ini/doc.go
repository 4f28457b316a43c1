// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

/*
Package ini provides a small key/value configuration store backed by
INI-style text. See https://en.wikipedia.org/wiki/INI_file.

A Document holds one Group per section. Groups store raw strings and offer
typed accessors that take a default value, which is returned only when the
key is absent. A value that is present but does not convert (like "abc" for
an integer) is reported as an error rather than replaced by the default.

This package is designed for load-once, read-mostly configuration: comments,
blank lines and key order from the source are not preserved when the
Document is saved.

Syntax

An INI document is UTF-8 text processed one line at a time. A line is either
a section header, a property, or empty:

	[section]
	key=value
	key2=escaped\=key\nand\\value

A line that begins with '[' and contains an unescaped ']' starts a section.
The section name is the text between the '[' and the last unescaped ']'.
Anything after that bracket is ignored. A section may be declared more than
once; its properties are merged into a single group.

Any other non-empty line is a property. The key is the text before the first
unescaped '=' and the value is the text after it. A line without an '=' is a
key with an empty value. Whitespace is significant. Setting the same key
twice in a section keeps the last value.

Properties encountered before any section header belong to the default
section, identified by the empty string (""). The default group always exists
after parsing, even if it has no properties.

An unescaped semicolon (';') ends the line; the rest of the line is a
comment.

Escapes

A backslash makes the next character literal. Two sequences are special:

	\n    U+000A line feed
	\r    U+000D carriage return

A backslash at the very end of a line is kept as a literal backslash.

When saving, backslashes, semicolons, line feeds and carriage returns are
always escaped. Keys additionally escape '=' and a leading '['; section
names escape ']'. Parsing saved output therefore reproduces every section,
key and value exactly.

Wide strings

Values are stored as UTF-8. Group.WideString and Group.SetWideString convert
to and from UTF-16 code units. Text that cannot be converted yields the empty
string instead of an error.
*/
package ini
