// Package resolve locates installed packages on disk. It walks the
// requesting directory's ancestor chain probing each modules directory,
// first honoring package exports maps and then falling back to a bare
// manifest scan for packages whose exports hide their manifest.
package resolve
