package graph

// In-page functions. Each is a JS function expression evaluated with the
// arguments listed next to it. They only gather raw facts; filtering,
// ranking and dedup happen in Go.

// listViewReadyJS reports whether at least one profile link is rendered in
// the dialog, or in the document when there is no dialog.
const listViewReadyJS = `() => {
	const scope = document.querySelector('[role="dialog"]') || document.body;
	const links = scope.querySelectorAll('a[role="link"][href^="/"]');
	for (const a of links) {
		if (/^\/[^\/]+\/$/.test(a.getAttribute("href") || "")) return true;
	}
	return false;
}`

// scrollCandidatesJS lists the descendants of the dialog whose computed
// overflow-y allows scrolling, with their index in dialog.querySelectorAll("*").
const scrollCandidatesJS = `() => {
	const dialog = document.querySelector('[role="dialog"]');
	if (!dialog) return { hasDialog: false, candidates: [] };
	const all = dialog.querySelectorAll("*");
	const candidates = [];
	for (let i = 0; i < all.length; i++) {
		const el = all[i];
		const oy = window.getComputedStyle(el).overflowY;
		if (oy !== "auto" && oy !== "scroll") continue;
		candidates.push({
			index: i,
			overflowY: oy,
			scrollHeight: el.scrollHeight,
			clientHeight: el.clientHeight
		});
	}
	return { hasDialog: true, candidates };
}`

// markContainerJS(index, attr) clears attr from every element, then stamps
// attr="1" on the dialog descendant at index. Returns false when the element
// is gone.
const markContainerJS = `(index, attr) => {
	for (const el of document.querySelectorAll("[" + attr + "]")) el.removeAttribute(attr);
	const dialog = document.querySelector('[role="dialog"]');
	if (!dialog) return false;
	const el = dialog.querySelectorAll("*")[index];
	if (!el) return false;
	el.setAttribute(attr, "1");
	return true;
}`

// scrollSampleJS(selector) returns the profile link hrefs in scope together
// with the scroll metrics of the element matching selector.
const scrollSampleJS = `(selector) => {
	const scope = document.querySelector('[role="dialog"]') || document.body;
	const hrefs = Array.from(scope.querySelectorAll('a[role="link"][href^="/"]'))
		.map((a) => a.getAttribute("href") || "");
	const el = document.querySelector(selector);
	if (!el) return { hrefs, found: false, scrollTop: 0, scrollHeight: 0, clientHeight: 0 };
	return {
		hrefs,
		found: true,
		scrollTop: el.scrollTop,
		scrollHeight: el.scrollHeight,
		clientHeight: el.clientHeight
	};
}`

// linkHrefsJS returns the raw href of every candidate profile link in scope
const linkHrefsJS = `() => {
	const scope = document.querySelector('[role="dialog"]') || document.body;
	return Array.from(scope.querySelectorAll('a[role="link"][href^="/"]'))
		.map((a) => a.getAttribute("href") || "");
}`
