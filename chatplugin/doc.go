// Package chatplugin is an adapter which lets chat assistants talk to
// cartographer backend.
//
// It calls backend HTTP API and converts JSON responses into chat
// friendly markdown: lists of places with ratings and links, embedded
// maps and step-by-step directions. Failures are rendered as text
// too so a chat user always gets an answer.
package chatplugin
