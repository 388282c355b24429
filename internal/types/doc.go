/*
Package types defines the block and document model shared by the bru reader
and writer.

# Overview

Text files are read into an ordered list of Blocks and then normalized into
one of four Documents:
  - RequestDocument: a single request file
  - FolderDocument: folder-level settings (folder.bru)
  - CollectionDocument: collection-root settings (collection.bru)
  - EnvironmentDocument: variables of one environment

# Blocks

A Block is a named section of a file:
  - Dictionary: one "name: value" entry per line
  - OrderedList: comma separated names, or legacy "<0|1> name value" lines
  - RawText: a verbatim payload such as a script or a JSON body

# Entries

Entry carries a name, a nullable value and two flags:
  - Enabled is false when the line was prefixed with "~"
  - Secret is true only for names declared in a vars:secret list

Secret entries never carry a value in text form. The value is resolved by
the caller through a lookup function (see package secrets).

# Example Structures

Request:
	{
	  "meta": {"name": "Get users", "type": "http-request", "seq": 1},
	  "http": {"method": "GET", "url": "{{host}}/users"},
	  "headers": [{"name": "accept", "value": "application/json", "enabled": true}],
	  "auth": {"mode": "none"},
	  "body": {"mode": "none"}
	}

Environment:
	{
	  "variables": [
	    {"name": "host", "value": "https://example.com", "enabled": true},
	    {"name": "token", "value": null, "enabled": true, "secret": true}
	  ]
	}

# Immutability

Documents are built once per parse call. Callers clone and mutate copies,
then hand them to the serializer.
*/
package types
