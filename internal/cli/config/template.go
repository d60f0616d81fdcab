package config

const catalogTemplateYAML = `# Resource catalog template for restrecord.
# Values under defaults are inherited by every resource that leaves them unset.
defaults:
  base-uri: https://api.example.com
  # json or xml.
  format: json
  # Optional. When set, PUT/PATCH/DELETE are sent as POST with the real verb
  # in this body field.
  # http-method-param: _method
  # scratch-disk-location: /tmp
  # default-headers:
  #   X-Client: restrecord
  # auth:
  #   basic-auth:
  #     username: change-me
  #     password: change-me
  # transport:
  #   timeout: 30s
  #   max-retries: 2
  #   requests-per-second: 10
  #   burst: 5
  #   tls:
  #     ca-cert-file: /etc/ssl/certs/internal-ca.pem
  #     client-cert-file: /etc/restrecord/client.pem
  #     client-key-file: /etc/restrecord/client-key.pem

resources:
  - name: Employee
    # Ancestors first; numeric ids are literal, names become placeholders.
    nested-under: Company:company_id
    # Comma-separated string or list.
    guarded: [salary]
    file-fields: avatar
    read-only-fields: created_at
    # identity-property: id
    # collection-key: collection
    # uri: /staff
    # search:
    #   parameter: search
    #   property: property
    #   operator: operator
    #   value: value
    #   logical-operator: logical_operator
    #   order-by: order_by
    #   order-dir: order_dir
`
