// Package drive reads a Google Drive folder tree as a document store.
//
// Folders and Google Docs are listed through the Drive v3 API; document
// bodies are read through the Docs v1 API so paragraph boundaries survive.
package drive
