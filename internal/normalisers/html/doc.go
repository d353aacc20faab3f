// Package html provides the Normaliser for HTML documents. Paragraphs are
// the text of block elements such as headings, paragraphs and list items;
// scripts, styles and the document head are dropped.
package html
