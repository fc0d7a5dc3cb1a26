// Package markup converts between the editor document and its HTML content
// string, and extracts mention annotations from content.
//
// The content form is one <p> per line (<p><br></p> for an empty line) with
// inline <strong>, <em>, <u>, <s> and mention spans:
//
//	<span class="mention" data-value="Alice"><strong>@Alice</strong></span>
package markup
