// Package platform enumerates the operating systems a Houdini package can be
// built for and maps each one to its profile: the default install location
// template and the options the copier applies to that system's install tree.
package platform
