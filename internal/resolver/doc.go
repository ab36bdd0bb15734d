// Package resolver maps the template name a user passes on the command line
// to the package specifier that is installed. Short names gain the official
// template prefix ("typescript" → "jslib-template-typescript"), scopes and
// versions are kept, and file:, URL and tarball sources pass through.
package resolver
