/*
Package ports defines the driven ports (interfaces) of the tetrator service.

# Key Interfaces

  - ResultCache: stores finished evaluations so repeated requests skip the work
    (implemented in memory and on Redis).
*/
package ports
