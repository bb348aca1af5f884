/*
Package registry keeps the foreign command root that mapped commands are installed into.

Every command is installed twice: under "namespace:name", which owns the subtree, and under its bare
name, a literal redirecting to the most recent registration of that name. The root is rebuilt on each
change and published atomically, so dispatchers never observe a partially installed command.
*/
package registry
