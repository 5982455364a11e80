package html2pdf

// PrintOverrideCSS is injected into the live document after it is ready and
// before export. It is never written back to the source file.
//
// The first rule turns off backdrop blur wherever it is declared: inline
// styles, blur utility classes, and stylesheets (through the universal
// selector). Blur rasterizes poorly and slowly in headless print. The second
// rule keeps backgrounds and colors exactly as rendered on screen instead of
// letting the print path lighten them.
const PrintOverrideCSS = `
[style*="backdrop-filter"],
[class*="backdrop-blur"],
* {
    backdrop-filter: none !important;
    -webkit-backdrop-filter: none !important;
}
* {
    -webkit-print-color-adjust: exact !important;
    print-color-adjust: exact !important;
}
`
